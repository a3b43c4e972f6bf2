package opts

import (
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/config"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/log"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/operation"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/patch"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Store      *store.Store
	Rules      []patch.Rule
	UserLogger *log.UserLogger
}

// Operator builds the operator every command runs
func (o *RootOpts) Operator() (*operation.Operator, error) {
	op, err := operation.New(operation.Options{
		Config: o.Config,
		Store:  o.Store,
		Rules:  o.Rules,
	})
	if err != nil {
		return nil, errors.Errorf("creating operator: %w", err)
	}
	return op, nil
}
