package router

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ligueylu-backend/internal/core/cache"
	"ligueylu-backend/internal/domain"
	"ligueylu-backend/internal/service"
)

// mountProviderActions wires the whole provider aggregate surface.
// Reads are public; every mutation sits behind the JWT group.
func mountProviderActions(api, authed *gin.RouterGroup, svc *service.ProviderService, ch *cache.Cache) {
	ezPub := New(api)
	ezAuth := New(authed)

	// 单条 provider 缓存：TTL 短，写路径主动失效
	providerKey := func(id string) string { return "provider:" + id }
	invalidate := func(ctx context.Context, id string) {
		if ch != nil {
			_ = ch.RDB.Del(ctx, providerKey(id)).Err()
		}
	}

	// ---------- lifecycle ----------

	type createIn struct {
		Email    string `json:"email"    binding:"required,email"`
		FullName string `json:"fullName" binding:"required,max=64"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone"    binding:"omitempty,max=32"`
	}
	RegisterAction(ezPub, Action[createIn, *domain.Provider]{
		Method: http.MethodPost,
		Path:   "/providers",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *createIn) (*domain.Provider, error) {
			return svc.Create(c.Request.Context(), service.CreateProviderRequest{
				Email:    in.Email,
				FullName: in.FullName,
				Password: in.Password,
				Phone:    in.Phone,
			})
		},
	})

	RegisterAction(ezPub, Action[struct{}, []domain.Provider]{
		Method: http.MethodGet,
		Path:   "/providers",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Provider, error) {
			return svc.List(c.Request.Context())
		},
	})

	RegisterAction(ezPub, Action[struct{}, *domain.Provider]{
		Method: http.MethodGet,
		Path:   "/providers/:id",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Provider, error) {
			ctx := c.Request.Context()
			id := c.Param("id")
			if ch == nil {
				return svc.GetByID(ctx, id)
			}
			return cache.GetOrLoadJSON(ch, ctx, providerKey(id), 10*time.Second,
				func(ctx0 context.Context) (*domain.Provider, error) {
					return svc.GetByID(ctx0, id)
				})
		},
	})

	type updateIn struct {
		Email    string `json:"email"    binding:"required,email"`
		FullName string `json:"fullName" binding:"required,max=64"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone"    binding:"omitempty,max=32"`
	}
	RegisterAction(ezAuth, Action[updateIn, *domain.Provider]{
		Method: http.MethodPut,
		Path:   "/providers/:id",
		Binder: BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateIn) (*domain.Provider, error) {
			p, err := svc.Update(c.Request.Context(), c.Param("id"), service.UpdateProviderRequest{
				Email:    in.Email,
				FullName: in.FullName,
				Password: in.Password,
				Phone:    in.Phone,
			})
			if err == nil {
				invalidate(c.Request.Context(), c.Param("id"))
			}
			return p, err
		},
	})

	RegisterAction(ezAuth, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/providers/:id",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := svc.Delete(c.Request.Context(), id); err != nil {
				return nil, err
			}
			invalidate(c.Request.Context(), id)
			return gin.H{"id": id}, nil
		},
	})

	// ---------- score & status ----------

	RegisterAction(ezAuth, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/providers/:id/activate",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			ok, err := svc.Activate(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, err
			}
			invalidate(c.Request.Context(), c.Param("id"))
			return gin.H{"activated": ok}, nil
		},
	})

	RegisterAction(ezPub, Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/providers/:id/active",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			p, err := svc.IsActive(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, err
			}
			return gin.H{"active": p != nil, "provider": p}, nil
		},
	})

	type scoreIn struct {
		Score float64 `json:"score"`
	}
	RegisterAction(ezAuth, Action[scoreIn, gin.H]{
		Method: http.MethodPut,
		Path:   "/providers/:id/score",
		Binder: BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *scoreIn) (gin.H, error) {
			id := c.Param("id")
			if err := svc.UpdateScore(c.Request.Context(), id, in.Score); err != nil {
				return nil, err
			}
			invalidate(c.Request.Context(), id)
			return gin.H{"id": id, "score": in.Score}, nil
		},
	})

	RegisterAction(ezPub, Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/providers/:id/score",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			score, err := svc.GetScore(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, err
			}
			return gin.H{"score": score}, nil
		},
	})

	RegisterAction(ezAuth, Action[domain.Address, gin.H]{
		Method: http.MethodPut,
		Path:   "/providers/:id/address",
		Binder: BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.Address) (gin.H, error) {
			id := c.Param("id")
			if err := svc.UpdateAddress(c.Request.Context(), id, *in); err != nil {
				return nil, err
			}
			invalidate(c.Request.Context(), id)
			return gin.H{"id": id}, nil
		},
	})

	RegisterAction(ezPub, Action[struct{}, domain.Address]{
		Method: http.MethodGet,
		Path:   "/providers/:id/address",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Address, error) {
			return svc.GetAddress(c.Request.Context(), c.Param("id"))
		},
	})

	// ---------- specialties ----------

	type specialtyIn struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	RegisterAction(ezAuth, Action[specialtyIn, *domain.Specialty]{
		Method: http.MethodPost,
		Path:   "/providers/:id/specialties",
		Binder: BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *specialtyIn) (*domain.Specialty, error) {
			return svc.AttachSpecialty(c.Request.Context(), c.Param("id"),
				domain.Specialty{ID: in.ID, Label: in.Label})
		},
	})

	RegisterAction(ezAuth, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/providers/:id/specialties/:specialtyId",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := svc.DetachSpecialty(c.Request.Context(), c.Param("id"), c.Param("specialtyId")); err != nil {
				return nil, err
			}
			return gin.H{"id": c.Param("id")}, nil
		},
	})

	RegisterAction(ezPub, Action[struct{}, []domain.Specialty]{
		Method: http.MethodGet,
		Path:   "/providers/:id/specialties",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Specialty, error) {
			return svc.SpecialtiesOf(c.Request.Context(), c.Param("id"))
		},
	})

	// ---------- services ----------

	type serviceIn struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
	}
	RegisterAction(ezAuth, Action[serviceIn, *domain.Service]{
		Method: http.MethodPost,
		Path:   "/providers/:id/services",
		Binder: BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *serviceIn) (*domain.Service, error) {
			return svc.AttachService(c.Request.Context(), c.Param("id"), domain.Service{
				ID:          in.ID,
				Name:        in.Name,
				Description: in.Description,
				Price:       in.Price,
			})
		},
	})

	RegisterAction(ezAuth, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/providers/:id/services/:serviceId",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := svc.DetachService(c.Request.Context(), c.Param("id"), c.Param("serviceId")); err != nil {
				return nil, err
			}
			return gin.H{"id": c.Param("id")}, nil
		},
	})

	RegisterAction(ezPub, Action[struct{}, []domain.Service]{
		Method: http.MethodGet,
		Path:   "/providers/:id/services",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Service, error) {
			return svc.ServicesOf(c.Request.Context(), c.Param("id"))
		},
	})

	// ---------- reservations ----------

	type reservationIn struct {
		ID        string     `json:"id"`
		Status    string     `json:"status"`
		Note      string     `json:"note"`
		CreatedAt *time.Time `json:"createdAt"`
	}
	RegisterAction(ezAuth, Action[reservationIn, *domain.Reservation]{
		Method: http.MethodPost,
		Path:   "/providers/:id/reservations",
		Binder: BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *reservationIn) (*domain.Reservation, error) {
			cand := domain.Reservation{ID: in.ID, Status: in.Status, Note: in.Note}
			if in.CreatedAt != nil {
				cand.CreatedAt = *in.CreatedAt
			}
			return svc.AttachReservation(c.Request.Context(), c.Param("id"), cand)
		},
	})

	RegisterAction(ezAuth, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/providers/:id/reservations/:reservationId",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			if err := svc.DetachReservation(c.Request.Context(), c.Param("id"), c.Param("reservationId")); err != nil {
				return nil, err
			}
			return gin.H{"id": c.Param("id")}, nil
		},
	})

	RegisterAction(ezPub, Action[struct{}, []domain.Reservation]{
		Method: http.MethodGet,
		Path:   "/providers/:id/reservations",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Reservation, error) {
			return svc.ReservationsOf(c.Request.Context(), c.Param("id"))
		},
	})

	// ---------- search & stats ----------

	RegisterAction(ezPub, Action[struct{}, *domain.Provider]{
		Method: http.MethodGet,
		Path:   "/search/email/:email",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Provider, error) {
			return svc.GetByEmail(c.Request.Context(), c.Param("email"))
		},
	})

	RegisterAction(ezPub, Action[struct{}, []domain.Provider]{
		Method: http.MethodGet,
		Path:   "/search/specialty/:term",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Provider, error) {
			return svc.SearchBySpecialty(c.Request.Context(), c.Param("term"))
		},
	})

	RegisterAction(ezPub, Action[struct{}, []domain.Provider]{
		Method: http.MethodGet,
		Path:   "/search/city/:city",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Provider, error) {
			return svc.FindByCity(c.Request.Context(), c.Param("city"))
		},
	})

	RegisterAction(ezPub, Action[struct{}, []domain.Provider]{
		Method: http.MethodGet,
		Path:   "/search/score/:min",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Provider, error) {
			min, err := strconv.ParseFloat(c.Param("min"), 64)
			if err != nil {
				return nil, BadRequest("invalid score threshold")
			}
			return svc.FindByScoreGreaterThan(c.Request.Context(), min)
		},
	})

	RegisterAction(ezPub, Action[struct{}, map[string]int64]{
		Method: http.MethodGet,
		Path:   "/stats/specialties",
		Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (map[string]int64, error) {
			ctx := c.Request.Context()
			if ch == nil {
				return svc.CountBySpecialty(ctx)
			}
			out, err := cache.GetOrLoadJSON(ch, ctx, "stats:specialties", 30*time.Second,
				func(ctx0 context.Context) (*map[string]int64, error) {
					m, e := svc.CountBySpecialty(ctx0)
					if e != nil {
						return nil, e
					}
					return &m, nil
				})
			if err != nil || out == nil {
				return nil, err
			}
			return *out, nil
		},
	})
}
