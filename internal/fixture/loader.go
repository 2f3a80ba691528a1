package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/admin"
	adminrepo "github.com/fekuna/omnipos-catalog-service/internal/admin/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	categoryrepo "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/database"
	"github.com/fekuna/omnipos-catalog-service/internal/inventory"
	inventoryrepo "github.com/fekuna/omnipos-catalog-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/media"
	mediarepo "github.com/fekuna/omnipos-catalog-service/internal/media/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	productrepo "github.com/fekuna/omnipos-catalog-service/internal/product/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/validation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Loader inserts fixture files into the catalog tables.
type Loader struct {
	db     *sqlx.DB
	fsys   fs.FS
	logger logger.ZapLogger

	// HashCost is the bcrypt cost used for plaintext admin passwords, zero
	// meaning bcrypt.DefaultCost.
	HashCost int
	now      func() time.Time
}

func NewLoader(db *sqlx.DB, fsys fs.FS, log logger.ZapLogger) *Loader {
	return &Loader{
		db:     db,
		fsys:   fsys,
		logger: log,
		now:    time.Now,
	}
}

// repositories bound to the transaction of one file
type repos struct {
	admin      admin.Repository
	categories category.Repository
	products   product.Repository
	inventory  inventory.Repository
	media      media.Repository
}

type loadFunc func(l *Loader, ctx context.Context, r *repos, rec Record) error

var loaders = map[string]loadFunc{
	"auth.user":                  (*Loader).loadAdmin,
	"inventory.category":         (*Loader).loadCategory,
	"inventory.product":          (*Loader).loadProduct,
	"inventory.brand":            (*Loader).loadBrand,
	"inventory.producttype":      (*Loader).loadProductType,
	"inventory.productinventory": (*Loader).loadProductInventory,
	"inventory.media":            (*Loader).loadMedia,
	"inventory.stock":            (*Loader).loadStock,
}

// LoadFile loads every record of the named file in one transaction and
// returns the number of records inserted. Nothing is kept when a record fails.
func (l *Loader) LoadFile(ctx context.Context, name string) (int, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return 0, err
	}
	records, err := Parse(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if err := l.Load(ctx, records); err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	l.logger.Info("fixture loaded", zap.String("file", name), zap.Int("records", len(records)))
	return len(records), nil
}

// Load inserts records in order in one transaction.
func (l *Loader) Load(ctx context.Context, records []Record) error {
	return database.Transact(ctx, l.db, func(tx database.Queryer) error {
		r := &repos{
			admin:      adminrepo.NewRepository(tx),
			categories: categoryrepo.NewRepository(tx),
			products:   productrepo.NewRepository(tx),
			inventory:  inventoryrepo.NewRepository(tx),
			media:      mediarepo.NewRepository(tx),
		}
		for i, rec := range records {
			load, ok := loaders[rec.Model]
			if !ok {
				return fmt.Errorf("record %d: unknown model %q", i, rec.Model)
			}
			if err := load(l, ctx, r, rec); err != nil {
				return fmt.Errorf("record %d (%s %s): %w", i, rec.Model, rec.PK, err)
			}
		}
		return nil
	})
}

func (l *Loader) loadAdmin(ctx context.Context, r *repos, rec Record) error {
	var fields struct {
		Username    string     `json:"username"`
		Email       string     `json:"email"`
		Password    string     `json:"password"`
		IsStaff     bool       `json:"is_staff"`
		IsSuperuser bool       `json:"is_superuser"`
		IsActive    bool       `json:"is_active"`
		DateJoined  time.Time  `json:"date_joined"`
		LastLogin   *time.Time `json:"last_login"`
	}
	fields.IsActive = true
	if err := json.Unmarshal(rec.Fields, &fields); err != nil {
		return err
	}
	if fields.Password == "" {
		return apperror.Invalid("password", "required", "this field is required")
	}

	u := &model.AdminUser{
		BaseModel:    model.BaseModel{ID: rec.PK},
		Username:     fields.Username,
		Email:        fields.Email,
		PasswordHash: fields.Password,
		IsStaff:      fields.IsStaff,
		IsSuperuser:  fields.IsSuperuser,
		IsActive:     fields.IsActive,
		DateJoined:   fields.DateJoined,
		LastLogin:    fields.LastLogin,
	}
	if u.DateJoined.IsZero() {
		u.DateJoined = l.now()
	}
	if err := validation.Struct(u); err != nil {
		return err
	}
	if !admin.IsHashed(u.PasswordHash) {
		hash, err := admin.HashPassword(u.PasswordHash, l.HashCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	return r.admin.Create(ctx, u)
}

func (l *Loader) loadCategory(ctx context.Context, r *repos, rec Record) error {
	c := &model.Category{IsActive: true}
	if err := json.Unmarshal(rec.Fields, c); err != nil {
		return err
	}
	if !model.ValidCategoryID(rec.PK) {
		return apperror.Invalid("id", "path", "category ids must not contain \"/\"")
	}
	c.ID = rec.PK
	c.Path = model.CategoryPath("", c.ID)
	c.Level = 0

	if c.ParentID != nil {
		parent, err := r.categories.FindByID(ctx, *c.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return fmt.Errorf("parent category %s: %w", *c.ParentID, apperror.ErrInvalidReference)
		}
		c.Path = model.CategoryPath(parent.Path, c.ID)
		c.Level = parent.Level + 1
	}
	if err := validation.Struct(c); err != nil {
		return err
	}
	return r.categories.Create(ctx, c)
}

func (l *Loader) loadProduct(ctx context.Context, r *repos, rec Record) error {
	p := &model.Product{IsActive: true}
	if err := json.Unmarshal(rec.Fields, p); err != nil {
		return err
	}
	p.ID = rec.PK
	l.stamp(&p.Timestamps)
	if err := validation.Struct(p); err != nil {
		return err
	}
	if err := r.products.Create(ctx, p); err != nil {
		return err
	}
	return r.products.AddCategories(ctx, p.ID, p.CategoryIDs...)
}

func (l *Loader) loadBrand(ctx context.Context, r *repos, rec Record) error {
	b := &model.Brand{}
	if err := json.Unmarshal(rec.Fields, b); err != nil {
		return err
	}
	b.ID = rec.PK
	if err := validation.Struct(b); err != nil {
		return err
	}
	return r.inventory.CreateBrand(ctx, b)
}

func (l *Loader) loadProductType(ctx context.Context, r *repos, rec Record) error {
	t := &model.ProductType{}
	if err := json.Unmarshal(rec.Fields, t); err != nil {
		return err
	}
	t.ID = rec.PK
	if err := validation.Struct(t); err != nil {
		return err
	}
	return r.inventory.CreateType(ctx, t)
}

func (l *Loader) loadProductInventory(ctx context.Context, r *repos, rec Record) error {
	inv := &model.ProductInventory{IsActive: true}
	if err := json.Unmarshal(rec.Fields, inv); err != nil {
		return err
	}
	inv.ID = rec.PK
	l.stamp(&inv.Timestamps)
	if err := validation.Struct(inv); err != nil {
		return err
	}
	if err := r.inventory.Create(ctx, inv); err != nil {
		return err
	}
	if inv.IsDefault {
		return r.inventory.ClearDefault(ctx, inv.ProductID, inv.ID)
	}
	return nil
}

func (l *Loader) loadMedia(ctx context.Context, r *repos, rec Record) error {
	m := &model.Media{}
	if err := json.Unmarshal(rec.Fields, m); err != nil {
		return err
	}
	m.ID = rec.PK
	m.ApplyDefaults()
	l.stamp(&m.Timestamps)
	if err := validation.Struct(m); err != nil {
		return err
	}
	if err := r.media.Create(ctx, m); err != nil {
		return err
	}
	if m.IsFeature {
		return r.media.ClearFeature(ctx, m.ProductInventoryID, m.ID)
	}
	return nil
}

func (l *Loader) loadStock(ctx context.Context, r *repos, rec Record) error {
	s := &model.Stock{}
	if err := json.Unmarshal(rec.Fields, s); err != nil {
		return err
	}
	s.ID = rec.PK
	if err := validation.Struct(s); err != nil {
		return err
	}
	return r.inventory.CreateStock(ctx, s)
}

// stamp fills timestamps the fixture left out.
func (l *Loader) stamp(t *model.Timestamps) {
	if t.UpdatedAt.IsZero() {
		t.Touch(l.now())
	}
}
