// Package internal holds logic shared by the command implementations.
package internal

import (
	"fmt"

	"github.com/arthur-debert/dotfiles/pkg/config"
	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/logging"
	"github.com/arthur-debert/dotfiles/pkg/ui/confirmations"
)

// LoadOrCreate loads the mappings file at path. When it does not exist the
// user is asked whether an empty one should be created; declining is an
// error and leaves nothing behind. The returned flag reports a creation.
func LoadOrCreate(path string, confirmer confirmations.Confirmer) (*config.MappingFile, bool, error) {
	logger := logging.GetLogger("commands.mappings")

	exists, err := config.Exists(path)
	if err != nil {
		return nil, false, err
	}
	if exists {
		mf, err := config.Load(path)
		return mf, false, err
	}

	question := fmt.Sprintf("Could not find the dotfiles config file at %s. Should I create it?", path)
	create, err := confirmer.Confirm(question, true)
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrConfigLoad, "could not ask for confirmation")
	}
	if !create {
		return nil, false, errors.Newf(errors.ErrConfigLoad, "the dotfiles config file %s does not exist", path).
			WithDetail("path", path)
	}

	mf := config.NewEmpty(path)
	if err := mf.Save(); err != nil {
		return nil, false, err
	}
	logger.Info().Str("path", path).Msg("Created empty mappings file")
	return mf, true, nil
}
