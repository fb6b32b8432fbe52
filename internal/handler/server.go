// Package handler implements the HTTP handlers for the storefront API.
// All handlers are methods on Server and are registered on a chi router by
// Routes. Methods are split into resource files (disc.go, cart.go, etc.) but
// share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/discgolf-api/internal/domain"
)

// DiscServicer defines the business operations the disc handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching storage or the service layer.
type DiscServicer interface {
	List(ctx context.Context) ([]domain.Disc, error)
	ListByType(ctx context.Context, discType string) ([]domain.Disc, error)
	Search(ctx context.Context, term string, mode int) ([]domain.Disc, error)
	GetByID(ctx context.Context, id int) (domain.Disc, error)
	Create(ctx context.Context, d domain.Disc) (domain.Disc, error)
	Update(ctx context.Context, d domain.Disc) (domain.Disc, error)
	Delete(ctx context.Context, id int) error
}

// CartServicer defines the business operations the cart handlers depend on.
type CartServicer interface {
	List(ctx context.Context) ([]domain.Cart, error)
	ListByUsername(ctx context.Context, username string) ([]domain.Cart, error)
	GetByID(ctx context.Context, id int) (domain.Cart, error)
	Create(ctx context.Context, cart domain.Cart) (domain.Cart, error)
	Update(ctx context.Context, cart domain.Cart) (domain.Cart, error)
	Delete(ctx context.Context, id int) error

	Contents(ctx context.Context, username string) ([]domain.Disc, error)
	Cost(ctx context.Context, username string) (float64, error)
	Count(ctx context.Context, username string) (int, error)
	Check(ctx context.Context, username string) ([]domain.Disc, error)
	CheckOne(ctx context.Context, username string, discID int) (domain.Disc, bool, error)
	Purchase(ctx context.Context, username string) ([]domain.Disc, error)
	PurchaseOne(ctx context.Context, username string, discID int) (domain.Disc, error)
	AddDisc(ctx context.Context, username string, discID int) (domain.Cart, error)
	RemoveDisc(ctx context.Context, username string, discID int) (domain.Cart, error)
	UpdateDiscQuantity(ctx context.Context, username string, discID, amount, mode int) (domain.Cart, error)
}

// LessonServicer defines the business operations the lesson handlers depend on.
type LessonServicer interface {
	List(ctx context.Context) ([]domain.Lesson, error)
	Search(ctx context.Context, title string) ([]domain.Lesson, error)
	ListByUser(ctx context.Context, username string) ([]domain.Lesson, error)
	ListOnDate(ctx context.Context, date string) ([]domain.Lesson, error)
	GetByID(ctx context.Context, id int) (domain.Lesson, error)
	Create(ctx context.Context, l domain.Lesson) (domain.Lesson, error)
	Update(ctx context.Context, l domain.Lesson) (domain.Lesson, error)
	Delete(ctx context.Context, id int) error
}

// UserServicer defines the business operations the user handlers depend on.
type UserServicer interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Update(ctx context.Context, u domain.User) (domain.User, error)
	Delete(ctx context.Context, id int) error
	DeleteByUsername(ctx context.Context, username string) error
	Login(ctx context.Context, username, password string) (domain.User, error)
	Logout(ctx context.Context, username string) (domain.User, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	discs   DiscServicer
	carts   CartServicer
	lessons LessonServicer
	users   UserServicer
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(discs DiscServicer, carts CartServicer, lessons LessonServicer, users UserServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{discs: discs, carts: carts, lessons: lessons, users: users, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}

// Routes returns a chi router with every API endpoint registered.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/discs", func(r chi.Router) {
		r.Get("/", s.ListDiscs)
		r.Post("/", s.CreateDisc)
		r.Put("/", s.UpdateDisc)
		r.Get("/filter", s.FilterDiscs)
		r.Get("/{id}", s.GetDisc)
		r.Delete("/{id}", s.DeleteDisc)
	})

	r.Route("/carts", func(r chi.Router) {
		r.Get("/", s.ListCarts)
		r.Post("/", s.CreateCart)
		r.Put("/", s.UpdateCart)
		r.Get("/{id}", s.GetCart)
		r.Delete("/{id}", s.DeleteCart)

		r.Get("/{username}/contents", s.GetCartContents)
		r.Put("/addDisc/{username}/{discId}", s.AddDiscToCart)
		r.Put("/removeDisc/{username}/{discId}", s.RemoveDiscFromCart)
		r.Put("/updateDiscQuantity/{username}/{discId}/{amount}/{mode}", s.UpdateCartDiscQuantity)
		r.Get("/getCost/{username}", s.GetCartCost)
		r.Get("/getCount/{username}", s.GetCartCount)
		r.Get("/checkCart/{username}", s.CheckCart)
		r.Put("/purchase/{username}", s.PurchaseCart)
		r.Get("/checkOne/{username}/{discId}", s.CheckOneDisc)
		r.Put("/purchaseOne/{username}/{discId}", s.PurchaseOneDisc)
	})

	r.Route("/lessons", func(r chi.Router) {
		r.Get("/", s.ListLessons)
		r.Post("/", s.CreateLesson)
		r.Put("/", s.UpdateLesson)
		r.Get("/dates", s.ListLessonsOnDate)
		r.Get("/user/{username}", s.ListLessonsByUser)
		r.Get("/{id}", s.GetLesson)
		r.Delete("/{id}", s.DeleteLesson)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.ListUsers)
		r.Post("/", s.CreateUser)
		r.Put("/", s.UpdateUser)
		r.Get("/{user}", s.GetUser)
		r.Delete("/{user}", s.DeleteUser)
		r.Get("/{user}/login/{password}", s.LoginUser)
		r.Get("/{user}/logout", s.LogoutUser)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
	return r
}
