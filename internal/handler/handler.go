package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/config"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/pii"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/repository"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/service"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	workLogs *service.WorkLogService
	payments *service.PaymentService
	expenses *service.ExpenseService
	workers  *service.WorkerService
	reports  *service.AggregationService

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, vault pii.Vault, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		workLogs: service.NewWorkLogService(repo, repo, repo),
		payments: service.NewPaymentService(repo),
		expenses: service.NewExpenseService(repo, repo),
		workers:  service.NewWorkerService(repo, vault),
		reports:  service.NewAggregationService(repo, repo),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 인증 관련
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/join", h.Join)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 아래 API 는 로그인 후에만 호출할 수 있다
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Put("/password", h.UpdateMyPassword)
		})

		r.Route("/sites", func(r chi.Router) {
			r.Get("/", h.GetSites)
			r.Get("/{id}", h.GetSite)
		})

		// 근무일지 작성과 수정은 팀장만, 조회는 관리자도 할 수 있다
		r.Route("/worklogs", func(r chi.Router) {
			r.Get("/", h.GetWorkLogs)

			r.Group(func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleForeman}))
				r.Post("/", h.CreateWorkLog)
				r.Put("/{id}", h.UpdateWorkLog)
				r.Delete("/{id}", h.DeleteWorkLog)
			})
		})

		// 근로자는 담당 팀장만 다룬다
		r.Route("/workers", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleForeman}))
			r.Post("/", h.CreateWorker)
			r.Get("/", h.GetMyWorkers)
			r.Put("/{id}", h.UpdateWorker)
			r.Post("/{id}/resign", h.ResignWorker)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.GetExpenses)
			r.With(h.RequiredRole([]domain.Role{domain.RoleForeman})).Post("/", h.CreateExpense)
		})

		// 관리자 전용
		r.Route("/admin", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleManager}))

			r.Route("/sites", func(r chi.Router) {
				r.Post("/", h.CreateSite)
				r.Put("/{id}", h.UpdateSite)
				r.Delete("/{id}", h.DeleteSite)
				r.Post("/{id}/foremen", h.AssignForeman)
				r.Delete("/{id}/foremen/{authorId}", h.UnassignForeman)
			})

			r.Put("/worklogs/mark-as-paid", h.MarkWorkLogsPaid)

			r.Route("/expenses/{id}", func(r chi.Router) {
				r.Put("/approve", h.ApproveExpense)
				r.Put("/reject", h.RejectExpense)
			})

			r.Get("/aggregation", h.GetReport)

			r.Route("/authors", func(r chi.Router) {
				r.Get("/", h.GetAuthors)
				r.Put("/{id}/daily-rate", h.UpdateAuthorDailyRate)
			})
		})
	})
}
