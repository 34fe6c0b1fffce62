package wallet

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/sportsbook/internal/deps"
)

const (
	RepoKey    = "wallet_repository"
	LedgerKey  = "wallet_ledger"
	ServiceKey = "wallet_service"
)

// MountAuthenticated mounts the caller's wallet routes
func MountAuthenticated(r *gin.RouterGroup, container *deps.Container) {
	handler := createHandler(container)

	walletGroup := r.Group("/wallet")
	walletGroup.GET("", handler.GetWallet)
	walletGroup.POST("/deposit", handler.Deposit)
	walletGroup.POST("/withdraw", handler.Withdraw)
	walletGroup.GET("/transactions", handler.GetTransactions)
}

// InitRepositories initializes and registers repositories and services for this module
func InitRepositories(container *deps.Container) {
	repo := NewRepository(container.DB)
	container.RegisterRepository(RepoKey, repo)

	ledger := NewLedger(repo)
	container.RegisterService(LedgerKey, ledger)

	srv := NewService(repo, ledger, container.DB, container.Events, container.Logger)
	container.RegisterService(ServiceKey, srv)
}

// LedgerFrom returns the shared ledger registered by InitRepositories.
func LedgerFrom(container *deps.Container) *Ledger {
	return container.GetService(LedgerKey).(*Ledger)
}

// createHandler creates a wallet handler with all dependencies
func createHandler(container *deps.Container) *Handler {
	srv := container.GetService(ServiceKey).(Service)
	return NewHandler(srv)
}
