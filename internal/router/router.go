package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/expense-backend/internal/handlers"
	"github.com/GregMSThompson/expense-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.StripSlashes)

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(lm.LoggerMiddleware)

	eh := handlers.NewExpenseHandlers(deps)
	hh := handlers.NewHealthHandlers(deps)

	r.Get("/", hh.Info)
	r.Get("/api", hh.Info)
	r.Get("/health", hh.Health)

	if deps.AuthRequired {
		m := middleware.NewMiddleware(deps.Firebase)
		r.Group(func(r chi.Router) {
			r.Use(m.FirebaseAuth)
			r.Mount("/expenses", eh.ExpenseRoutes())
		})
		return r
	}

	r.Mount("/expenses", eh.ExpenseRoutes())
	return r
}
