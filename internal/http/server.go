package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"sitecms-backend-go/internal/ai"
	"sitecms-backend-go/internal/config"
	"sitecms-backend-go/internal/db"
	"sitecms-backend-go/internal/services"
)

// UploadSigner issues parameters for direct browser uploads to the CDN.
type UploadSigner interface {
	SignUpload(folder string, at time.Time) (services.UploadSignature, error)
}

// Options carries the external collaborators of a Server. A nil Model means
// AI is not configured; a nil Signer means direct uploads are unavailable.
type Options struct {
	Model    ai.Model
	Uploader services.MediaUploader
	Signer   UploadSigner
	Fixtures services.Fixtures
}

type Server struct {
	Config  config.Config
	Tokens  services.TokenService
	Admins  *services.AdminStore
	Limiter *services.LoginLimiter

	Blog     *services.BlogStore
	Services *services.ServiceStore
	Projects *services.ProjectStore
	Gallery  *services.GalleryStore
	Settings *services.SettingsStore
	Seeder   *services.Seeder
	Status   *services.StatusReporter
	Events   *services.EventHub

	Content *ai.ContentGenerator
	Images  *ai.ImageGenerator
	Signer  UploadSigner
}

func NewServer(gw *db.Gateway, cfg config.Config, hub *services.EventHub, opts Options) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		SessionTTL: time.Duration(cfg.SessionTTLSeconds) * time.Second,
	}
	model := opts.Model
	if model == nil {
		model = ai.Unconfigured{}
	}
	uploader := opts.Uploader
	if uploader == nil {
		uploader = services.LocalUploader{BasePath: cfg.MediaStoragePath}
	}
	_, aiOff := model.(ai.Unconfigured)
	return &Server{
		Config:   cfg,
		Tokens:   tokens,
		Admins:   services.NewAdminStore(gw, tokens),
		Limiter:  services.NewLoginLimiter(cfg.LoginMaxAttempts, time.Minute),
		Blog:     services.NewBlogStore(gw, hub),
		Services: services.NewServiceStore(gw, hub),
		Projects: services.NewProjectStore(gw, hub, cfg.ProjectDefaultLocation),
		Gallery:  services.NewGalleryStore(gw, hub),
		Settings: services.NewSettingsStore(gw, hub),
		Seeder:   services.NewSeeder(gw, hub, opts.Fixtures, cfg.ProjectDefaultLocation),
		Status:   services.NewStatusReporter(gw, hub, cfg.MediaStoragePath, !aiOff, opts.Signer != nil),
		Events:   hub,
		Content:  ai.NewContentGenerator(model),
		Images:   ai.NewImageGenerator(model, uploader),
		Signer:   opts.Signer,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(TrustedRealIP(s.Config.TrustedProxies))
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", s.Health)

	r.Route("/api", func(api chi.Router) {
		api.Use(WithSession(s.Tokens))

		api.Post("/auth/login", s.Login)
		api.Post("/auth/logout", s.Logout)
		api.Get("/auth/session", s.Session)

		api.Get("/blog", s.ListBlogPosts)
		api.Get("/blog/{slug}", s.GetBlogPost)
		api.Get("/services", s.ListServices)
		api.Get("/services/{id}", s.GetService)
		api.Get("/projects", s.ListProjects)
		api.Get("/projects/{id}", s.GetProject)
		api.Get("/gallery", s.ListGallery)
		api.Get("/gallery/{id}", s.GetGalleryItem)
		api.Get("/settings", s.GetSettings)

		api.Group(func(admin chi.Router) {
			admin.Use(RequireAdmin)

			admin.Post("/blog", s.CreateBlogPost)
			admin.Put("/blog/{slug}", s.UpdateBlogPost)
			admin.Delete("/blog/{slug}", s.DeleteBlogPost)

			admin.Post("/services", s.CreateService)
			admin.Put("/services/{id}", s.UpdateService)
			admin.Delete("/services/{id}", s.DeleteService)

			admin.Post("/projects", s.CreateProject)
			admin.Put("/projects/{id}", s.UpdateProject)
			admin.Delete("/projects/{id}", s.DeleteProject)

			admin.Post("/gallery", s.CreateGalleryItem)
			admin.Put("/gallery/{id}", s.UpdateGalleryItem)
			admin.Delete("/gallery/{id}", s.DeleteGalleryItem)

			admin.Put("/settings", s.UpdateSettings)
			admin.Post("/settings", s.UpdateSettings)

			admin.Post("/seed", s.Seed)

			admin.Post("/ai/generate", s.GenerateContent)
			admin.Post("/ai/seo-optimize", s.OptimizeSEO)
			admin.Post("/ai/suggest-topics", s.SuggestTopics)
			admin.Post("/ai/image", s.GenerateImage)

			admin.Post("/cloudinary/sign", s.SignUpload)
			admin.Get("/admin/status", s.AdminStatus)
		})
	})

	r.Get("/ws/events", s.EventsSocket)
	r.Handle("/media/*", s.mediaFiles())
	return r
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// mediaFiles serves locally stored uploads without directory listings.
func (s *Server) mediaFiles() http.Handler {
	files := http.StripPrefix("/media/", http.FileServer(http.Dir(s.Config.MediaStoragePath)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		files.ServeHTTP(w, r)
	})
}
