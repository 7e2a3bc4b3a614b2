package api

import (
	"database/sql"
	"net/http"
)

// Options configures the API router.
type Options struct {
	DB        *sql.DB
	JWTSecret string
	DBPath    string
	BackupDir string
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(opts Options) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: opts.DB, JWTSecret: opts.JWTSecret}
	tonersHandler := &TonersHandler{DB: opts.DB}
	printersHandler := &PrintersHandler{DB: opts.DB}
	employeesHandler := &EmployeesHandler{DB: opts.DB}
	ordersHandler := &OrdersHandler{DB: opts.DB}
	backupHandler := &BackupHandler{DB: opts.DB, DBPath: opts.DBPath, Dir: opts.BackupDir}
	settingsHandler := &SettingsHandler{DB: opts.DB}

	authMW := AuthMiddleware(opts.JWTSecret)
	authed := func(h http.HandlerFunc) http.Handler { return authMW(h) }

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("PUT /api/auth/password", authed(authHandler.ChangePassword))

	// Toners.
	mux.Handle("GET /api/toners", authed(tonersHandler.List))
	mux.Handle("POST /api/toners", authed(tonersHandler.Create))
	mux.Handle("GET /api/toners/{id}", authed(tonersHandler.Get))
	mux.Handle("PUT /api/toners/{id}", authed(tonersHandler.Update))
	mux.Handle("DELETE /api/toners/{id}", authed(tonersHandler.Delete))
	mux.Handle("POST /api/toners/{id}/consume", authed(tonersHandler.Consume))
	mux.Handle("GET /api/toners/{id}/consumption", authed(tonersHandler.Consumption))

	// Printers.
	mux.Handle("GET /api/printers", authed(printersHandler.List))
	mux.Handle("POST /api/printers", authed(printersHandler.Create))
	mux.Handle("GET /api/printers/{id}", authed(printersHandler.Get))
	mux.Handle("PUT /api/printers/{id}", authed(printersHandler.Update))
	mux.Handle("DELETE /api/printers/{id}", authed(printersHandler.Delete))
	mux.Handle("PUT /api/printers/{id}/status", authed(printersHandler.SetStatus))
	mux.Handle("PUT /api/printers/{id}/toners", authed(printersHandler.SetToners))
	mux.Handle("PUT /api/printers/{id}/quantity", authed(printersHandler.ChangeQuantity))

	// Employees and assignments.
	mux.Handle("GET /api/employees", authed(employeesHandler.List))
	mux.Handle("POST /api/employees", authed(employeesHandler.Create))
	mux.Handle("GET /api/employees/{id}", authed(employeesHandler.Get))
	mux.Handle("PUT /api/employees/{id}", authed(employeesHandler.Update))
	mux.Handle("DELETE /api/employees/{id}", authed(employeesHandler.Delete))
	mux.Handle("POST /api/employees/{id}/printers/{printerID}", authed(employeesHandler.Assign))
	mux.Handle("DELETE /api/employees/{id}/printers/{printerID}", authed(employeesHandler.Unassign))

	// Orders, history, statistics, overview.
	mux.Handle("GET /api/orders", authed(ordersHandler.OrderList))
	mux.Handle("POST /api/orders/history", authed(ordersHandler.CommitToHistory))
	mux.Handle("GET /api/orders/history", authed(ordersHandler.History))
	mux.Handle("GET /api/overview", authed(ordersHandler.Overview))
	mux.Handle("GET /api/stats", authed(ordersHandler.Stats))

	// Backup.
	mux.Handle("GET /api/backups", authed(backupHandler.List))
	mux.Handle("POST /api/backups", authed(backupHandler.Create))
	mux.Handle("POST /api/backups/restore", authed(backupHandler.Restore))
	mux.Handle("GET /api/backups/settings", authed(backupHandler.GetSettings))
	mux.Handle("PUT /api/backups/settings", authed(backupHandler.UpdateSettings))

	// Preferences.
	mux.Handle("GET /api/settings/language", authed(settingsHandler.GetLanguage))
	mux.Handle("PUT /api/settings/language", authed(settingsHandler.SetLanguage))

	return mux
}
