package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/config"
	"github.com/sysu-ecnc-dev/work-ledger/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/providers", func(r chi.Router) {
			r.Get("/", h.GetMyProviders)
			r.Post("/", h.CreateProvider)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.provider)
				r.Get("/", h.GetProvider)
				r.Patch("/", h.UpdateProvider)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetMySettings)
			r.Patch("/", h.UpdateMySettings)
		})

		r.Route("/work-logs", func(r chi.Router) {
			r.Get("/", h.GetWorkLogs)
			r.Post("/", h.CreateWorkLog)
			r.Post("/preview", h.PreviewWorkLog)
			r.Get("/export", h.ExportWorkLogs)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.workLog)
				r.Get("/", h.GetWorkLog)
				r.Patch("/", h.UpdateWorkLog)
				r.Delete("/", h.DeleteWorkLog)
			})
		})

		r.Route("/summary", func(r chi.Router) {
			r.Get("/", h.GetSummary)
			r.With(h.myInfo).Post("/email", h.EmailSummary)
		})

		r.Get("/audit", h.GetAuditLogs)
	})
}
