package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
)

// PartnerDirectory supplies the partner roster in display order.
type PartnerDirectory interface {
	ListPartners(ctx context.Context) ([]entity.Partner, error)
}

// Cabinets is a built hierarchy plus its selectable options. Treat as read-only.
type Cabinets struct {
	Hierarchy Hierarchy                   `json:"hierarchy"`
	Options   []entity.OwnerCabinetOption `json:"options"`
	BuiltAt   time.Time                   `json:"built_at"`
}

// CabinetContext builds the cabinets on first read and serves the cached value
// afterwards. Invalidate drops the cache so the next read rebuilds from the directory.
type CabinetContext struct {
	mu            sync.Mutex
	directory     PartnerDirectory
	currentUserID string
	locale        language.Tag
	logger        *slog.Logger
	now           func() time.Time

	built *Cabinets
}

func NewCabinetContext(directory PartnerDirectory, currentUserID string, locale language.Tag, logger *slog.Logger) *CabinetContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &CabinetContext{
		directory:     directory,
		currentUserID: currentUserID,
		locale:        locale,
		logger:        logger,
		now:           time.Now,
	}
}

func (c *CabinetContext) Get(ctx context.Context) (Cabinets, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built != nil {
		return c.built.Clone(), nil
	}

	partners, err := c.directory.ListPartners(ctx)
	if err != nil {
		return Cabinets{}, &TechnicalError{Code: CodeRosterUnavailable, Message: "failed to load partner roster", Err: err}
	}

	ids := make([]string, len(partners))
	names := make(map[string]string, len(partners))
	for i, p := range partners {
		ids[i] = p.ID
		if p.Name != "" {
			names[p.ID] = p.Name
		}
	}
	lookup := func(id string) (string, bool) {
		name, ok := names[id]
		return name, ok
	}

	h := BuildHierarchy(c.currentUserID, ids, lookup)
	c.built = &Cabinets{
		Hierarchy: h,
		Options:   BuildCabinetOptions(h, c.currentUserID, c.locale),
		BuiltAt:   c.now(),
	}
	c.logger.Info("cabinet hierarchy built", "partners", len(partners), "nodes", len(h.Nodes))
	return c.built.Clone(), nil
}

// Clone returns a deep copy so callers cannot reach the cached build.
func (c Cabinets) Clone() Cabinets {
	out := Cabinets{
		Hierarchy: Hierarchy{RootID: c.Hierarchy.RootID},
		BuiltAt:   c.BuiltAt,
	}
	if c.Options != nil {
		out.Options = append([]entity.OwnerCabinetOption(nil), c.Options...)
	}
	if c.Hierarchy.Nodes != nil {
		out.Hierarchy.Nodes = make([]entity.OwnerHierarchyNode, len(c.Hierarchy.Nodes))
		for i, n := range c.Hierarchy.Nodes {
			if n.ParentID != nil {
				parent := *n.ParentID
				n.ParentID = &parent
			}
			if n.Children != nil {
				n.Children = append(make([]string, 0, len(n.Children)), n.Children...)
			}
			out.Hierarchy.Nodes[i] = n
		}
	}
	return out
}

func (c *CabinetContext) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.built = nil
}

// Built reports whether a cached build is present.
func (c *CabinetContext) Built() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.built != nil
}
