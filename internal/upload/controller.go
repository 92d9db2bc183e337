// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upload holds the user's selected input file and conversion options
// and decides when they are complete enough to submit.
package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdiddy/docview/pkg/types"
)

// knownExtensions lists the suffixes stripped when deriving a display name.
var knownExtensions = []string{".pdf"}

// Controller owns the selected file and the two conversion options.
// It is safe for concurrent use.
type Controller struct {
	mu            sync.Mutex
	file          *types.FileBlob
	displayName   string
	loadingMethod types.LoadingMethod
	parsingOption types.ParsingOption
}

// NewController returns an empty controller.
func NewController() *Controller {
	return &Controller{}
}

// SelectFile stores f and derives its display name. A nil file is ignored.
func (c *Controller) SelectFile(f *types.FileBlob) {
	if f == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.file = f
	c.displayName = DisplayName(f.Name)
}

// SelectPath reads the file at path and selects it.
func (c *Controller) SelectPath(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	c.SelectFile(&types.FileBlob{Name: filepath.Base(path), Data: data})
	return nil
}

// SetLoadingMethod stores the loading method. An empty value clears it.
func (c *Controller) SetLoadingMethod(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadingMethod = types.LoadingMethod(strings.TrimSpace(v))
}

// SetParsingOption stores the parsing option. An empty value clears it.
func (c *Controller) SetParsingOption(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parsingOption = types.ParsingOption(strings.TrimSpace(v))
}

// CanSubmit reports whether a file, a loading method, and a parsing option
// are all set.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submission().Validate() == nil
}

// Submission returns the current inputs as a submission for one attempt,
// along with a *types.ValidationError when CanSubmit is false. The partial
// submission is still returned so the caller can surface the notice.
func (c *Controller) Submission() (types.Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := c.submission()
	return sub, sub.Validate()
}

func (c *Controller) submission() types.Submission {
	return types.Submission{
		File:          c.file,
		LoadingMethod: c.loadingMethod,
		ParsingOption: c.parsingOption,
	}
}

// File returns the selected file, or nil.
func (c *Controller) File() *types.FileBlob {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file
}

// DisplayName returns the selected file's name without its known extension.
func (c *Controller) DisplayName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayName
}

func (c *Controller) LoadingMethod() types.LoadingMethod {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadingMethod
}

func (c *Controller) ParsingOption() types.ParsingOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parsingOption
}

// DisplayName strips a known extension suffix from filename, ignoring case.
// Names with other extensions are returned unchanged.
func DisplayName(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	lower := strings.ToLower(base)
	for _, ext := range knownExtensions {
		if strings.HasSuffix(lower, ext) && len(base) > len(ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}
