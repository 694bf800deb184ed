package catalog

import (
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Holder serves an immutable catalog snapshot. It is loaded once at startup
// and injected into the pricing calculator; handlers never touch the file
// after boot.
type Holder struct {
	current atomic.Value // holds Catalog
}

// NewHolder loads the catalog file via viper. When path is non-empty it is
// used directly, otherwise "catalog.yml" is searched in the working
// directory and /etc/rera. A missing file yields an empty catalog so that
// quotation generation keeps working on fallback prices.
func NewHolder(path string, log *zap.Logger) (*Holder, error) {
	v := viper.New()

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("catalog")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/rera")
	}

	holder := &Holder{}
	holder.current.Store(Catalog{})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn("pricing catalog file not found, serving fallback prices only")
			return holder, nil
		}
		if strings.TrimSpace(path) != "" && isNotExist(err) {
			log.Warn("pricing catalog file not found, serving fallback prices only",
				zap.String("path", path))
			return holder, nil
		}
		return nil, err
	}

	var raw Catalog
	if err := v.UnmarshalKey("catalog", &raw); err != nil {
		return nil, err
	}

	normalized := Normalize(raw)
	holder.current.Store(normalized)
	log.Info("pricing catalog loaded",
		zap.String("file", filepath.Base(v.ConfigFileUsed())),
		zap.Int("categories", len(normalized)))
	return holder, nil
}

// NewStaticHolder wraps an in-memory catalog, mainly for tests.
func NewStaticHolder(c Catalog) *Holder {
	holder := &Holder{}
	holder.current.Store(Normalize(c))
	return holder
}

// Snapshot returns the current immutable catalog.
func (h *Holder) Snapshot() Catalog {
	return h.current.Load().(Catalog)
}

func isNotExist(err error) bool {
	return strings.Contains(err.Error(), "no such file")
}
