// Package document implements the pdfdeck operations as thin sequences of
// pdfcpu calls. The package owns no PDF mechanics: parsing, cross-reference
// handling, encryption and page content all live behind the pdfcpu api.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/wudi/pdfdeck/observability"
)

const maxPasswordAttempts = 3

// ErrNoPassword is returned by password sources that cannot prompt.
var ErrNoPassword = errors.New("document: password required")

// PasswordSource supplies passwords for encrypted documents. attempt starts
// at 1 and increments on each authentication failure.
type PasswordSource interface {
	Password(path string, attempt int) (string, error)
}

// PasswordFunc adapts a function to a PasswordSource.
type PasswordFunc func(path string, attempt int) (string, error)

func (f PasswordFunc) Password(path string, attempt int) (string, error) { return f(path, attempt) }

// FixedPassword returns a source that always answers with pw.
func FixedPassword(pw string) PasswordSource {
	return PasswordFunc(func(string, int) (string, error) { return pw, nil })
}

// NoPassword refuses to supply a password. It is the default source, for
// non-interactive callers.
func NoPassword() PasswordSource {
	return PasswordFunc(func(path string, _ int) (string, error) {
		return "", fmt.Errorf("%w: %s is encrypted", ErrNoPassword, path)
	})
}

// Processor runs document operations with shared logging, metrics and
// password acquisition.
type Processor struct {
	log       observability.Logger
	metrics   observability.Metrics
	passwords PasswordSource
}

// Option mutates a Processor during construction.
type Option func(*Processor)

// WithLogger sets the logger operations report through.
func WithLogger(l observability.Logger) Option {
	return func(p *Processor) { p.log = l }
}

// WithMetrics sets the timing sink.
func WithMetrics(m observability.Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

// WithPasswordSource sets the source consulted for encrypted inputs.
func WithPasswordSource(s PasswordSource) Option {
	return func(p *Processor) { p.passwords = s }
}

// NewProcessor constructs a Processor. Without options it logs nowhere and
// fails on encrypted inputs.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		log:       observability.NopLogger{},
		metrics:   observability.NopMetrics{},
		passwords: NoPassword(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) conf() *model.Configuration {
	c := model.NewDefaultConfiguration()
	c.ValidationMode = model.ValidationRelaxed
	return c
}

// isPasswordError reports whether err is an authentication failure. pdfcpu
// does not export a stable sentinel across the versions in the wild, so this
// inspects the message.
func isPasswordError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "password")
}

// withPassword runs fn with a default configuration first and retries with
// passwords from the source while fn keeps failing authentication, bounded
// at maxPasswordAttempts.
func (p *Processor) withPassword(path string, fn func(conf *model.Configuration) error) error {
	err := fn(p.conf())
	if err == nil || !isPasswordError(err) {
		return err
	}
	for attempt := 1; attempt <= maxPasswordAttempts; attempt++ {
		pw, perr := p.passwords.Password(path, attempt)
		if perr != nil {
			return perr
		}
		conf := p.conf()
		conf.UserPW = pw
		conf.OwnerPW = pw
		err = fn(conf)
		if err == nil || !isPasswordError(err) {
			return err
		}
		p.log.Warn("wrong password", observability.String("file", path), observability.Int("attempt", attempt))
	}
	return fmt.Errorf("open %s: %w", path, err)
}

func (p *Processor) observe(name string, start time.Time) {
	p.metrics.Observe(name, time.Since(start))
}

func checkInputs(paths ...string) error {
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("input %s: %w", path, err)
		}
		if fi.IsDir() {
			return fmt.Errorf("input %s: is a directory", path)
		}
	}
	return nil
}

// Merge concatenates the inputs, in order, into out. The merged page count
// equals the sum of the inputs' page counts.
func (p *Processor) Merge(ctx context.Context, out string, inputs []string) error {
	start := time.Now()
	defer p.observe(observability.MetricMergeTime, start)
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(inputs) < 2 {
		return fmt.Errorf("merge: need at least 2 inputs, got %d", len(inputs))
	}
	if err := checkInputs(inputs...); err != nil {
		return err
	}
	if err := p.withPassword(inputs[0], func(conf *model.Configuration) error {
		return api.MergeCreateFile(inputs, out, false, conf)
	}); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	p.log.Info("merged", observability.Int("inputs", len(inputs)), observability.String("out", out), observability.Duration("took", time.Since(start)))
	return nil
}

// Stat reads the metadata report for path, prompting for a password when the
// document is encrypted.
func (p *Processor) Stat(ctx context.Context, path string) (*Info, error) {
	defer p.observe(observability.MetricStatTime, time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkInputs(path); err != nil {
		return nil, err
	}
	var info *Info
	err := p.withPassword(path, func(conf *model.Configuration) error {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		mc, err := api.ReadValidateAndOptimize(f, conf)
		if err != nil {
			return err
		}
		version := ""
		if mc.HeaderVersion != nil {
			version = mc.HeaderVersion.String()
		}
		info = &Info{
			Path:         path,
			Version:      version,
			Pages:        mc.PageCount,
			Encrypted:    mc.Encrypt != nil,
			Title:        mc.Title,
			Author:       mc.Author,
			Subject:      mc.Subject,
			Keywords:     mc.Keywords,
			Creator:      mc.Creator,
			Producer:     mc.Producer,
			CreationDate: mc.CreationDate,
			ModDate:      mc.ModDate,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("info: %w", err)
	}
	return info, nil
}

// Encrypted reports whether path requires a password to open. It never
// consults the password source: an authentication failure from pdfcpu is
// itself the signal that the document is encrypted.
func (p *Processor) Encrypted(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := checkInputs(path); err != nil {
		return false, err
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	mc, err := api.ReadValidateAndOptimize(f, p.conf())
	if err != nil {
		if isPasswordError(err) {
			return true, nil
		}
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	return mc.Encrypt != nil, nil
}

// Rotate rotates pages by degrees (a non-zero multiple of 90) and writes the
// result to out. page 0 rotates every page; a positive page rotates only
// that 1-based page and must be within the document.
func (p *Processor) Rotate(ctx context.Context, in, out string, degrees, page int) error {
	start := time.Now()
	defer p.observe(observability.MetricRotateTime, start)
	if err := ctx.Err(); err != nil {
		return err
	}
	if degrees == 0 || degrees%90 != 0 {
		return fmt.Errorf("rotate: degrees must be a non-zero multiple of 90, got %d", degrees)
	}
	if page < 0 {
		return fmt.Errorf("rotate: page must be positive, got %d", page)
	}
	if err := checkInputs(in); err != nil {
		return err
	}
	err := p.withPassword(in, func(conf *model.Configuration) error {
		var selected []string
		if page > 0 {
			count, err := pageCount(in, conf)
			if err != nil {
				return err
			}
			if page > count {
				return fmt.Errorf("page %d out of range (1-%d)", page, count)
			}
			selected = []string{strconv.Itoa(page)}
		}
		return api.RotateFile(in, out, degrees, selected, conf)
	})
	if err != nil {
		return fmt.Errorf("rotate: %w", err)
	}
	p.log.Info("rotated", observability.String("file", in), observability.Int("degrees", degrees), observability.String("out", out), observability.Duration("took", time.Since(start)))
	return nil
}

func pageCount(path string, conf *model.Configuration) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	mc, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return 0, err
	}
	return mc.PageCount, nil
}

// Split writes the pages of in to dir in chunks of span pages, naming each
// output file by expanding pattern. The last chunk may be shorter. Returns
// the produced paths in page order.
func (p *Processor) Split(ctx context.Context, in, dir string, span int, pattern string) ([]string, error) {
	start := time.Now()
	defer p.observe(observability.MetricSplitTime, start)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if span < 1 {
		return nil, fmt.Errorf("split: page count per file must be at least 1, got %d", span)
	}
	if err := checkInputs(in); err != nil {
		return nil, err
	}
	if dir == "" {
		dir = filepath.Dir(in)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	// pdfcpu controls the names it writes, so split into a scratch
	// directory first and rename into dir per the pattern.
	scratch, err := os.MkdirTemp("", "pdfdeck-split-")
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	defer os.RemoveAll(scratch)

	if err := p.withPassword(in, func(conf *model.Configuration) error {
		return api.SplitFile(in, scratch, span, conf)
	}); err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	parts, err := orderedSplitParts(scratch)
	if err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("split: %s produced no output", in)
	}

	ext := strings.TrimPrefix(filepath.Ext(in), ".")
	if ext == "" {
		ext = "pdf"
	}
	name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	outputs := make([]string, 0, len(parts))
	for i, part := range parts {
		out := filepath.Join(dir, Expand(pattern, Vars{Name: name, Page: i + 1, Ext: ext}))
		if err := os.Rename(part, out); err != nil {
			// Scratch may live on another filesystem than dir.
			if err = copyFile(part, out); err != nil {
				return nil, fmt.Errorf("split: %w", err)
			}
		}
		outputs = append(outputs, out)
	}
	p.log.Info("split", observability.String("file", in), observability.Int("parts", len(outputs)), observability.Duration("took", time.Since(start)))
	return outputs, nil
}

var splitPartNum = regexp.MustCompile(`(\d+)(?:-\d+)?\.\w+$`)

// orderedSplitParts lists the files pdfcpu wrote, ordered by the first page
// number embedded in each name. Lexical order would put part 10 before
// part 2.
func orderedSplitParts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	type part struct {
		path string
		page int
	}
	parts := make([]part, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := splitPartNum.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		page, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts = append(parts, part{path: filepath.Join(dir, e.Name()), page: page})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].page < parts[j].page })
	paths := make([]string, len(parts))
	for i, pt := range parts {
		paths[i] = pt.path
	}
	return paths, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

// Encrypt writes an encrypted copy of in to out, protected by userPW. An
// empty ownerPW defaults to userPW.
func (p *Processor) Encrypt(ctx context.Context, in, out, userPW, ownerPW string) error {
	start := time.Now()
	defer p.observe(observability.MetricEncryptTime, start)
	if err := ctx.Err(); err != nil {
		return err
	}
	if userPW == "" {
		return fmt.Errorf("encrypt: empty password")
	}
	if ownerPW == "" {
		ownerPW = userPW
	}
	if err := checkInputs(in); err != nil {
		return err
	}
	conf := p.conf()
	conf.UserPW = userPW
	conf.OwnerPW = ownerPW
	if err := api.EncryptFile(in, out, conf); err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}
	p.log.Info("encrypted", observability.String("file", in), observability.String("out", out), observability.Duration("took", time.Since(start)))
	return nil
}

// Decrypt writes a decrypted copy of in to out, consulting the password
// source when the first attempt fails authentication.
func (p *Processor) Decrypt(ctx context.Context, in, out string) error {
	start := time.Now()
	defer p.observe(observability.MetricDecryptTime, start)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkInputs(in); err != nil {
		return err
	}
	if err := p.withPassword(in, func(conf *model.Configuration) error {
		return api.DecryptFile(in, out, conf)
	}); err != nil {
		return fmt.Errorf("decrypt: %w", err)
	}
	p.log.Info("decrypted", observability.String("file", in), observability.String("out", out), observability.Duration("took", time.Since(start)))
	return nil
}

// Optimize resaves in to out through pdfcpu's optimizer.
func (p *Processor) Optimize(ctx context.Context, in, out string) error {
	start := time.Now()
	defer p.observe(observability.MetricOptimizeTime, start)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkInputs(in); err != nil {
		return err
	}
	if err := p.withPassword(in, func(conf *model.Configuration) error {
		return api.OptimizeFile(in, out, conf)
	}); err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	p.log.Info("optimized", observability.String("file", in), observability.String("out", out), observability.Duration("took", time.Since(start)))
	return nil
}

// ExtractPageImages writes the images embedded in the document to dir and
// returns their paths, ordered by name.
func (p *Processor) ExtractPageImages(ctx context.Context, in, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkInputs(in); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if err := p.withPassword(in, func(conf *model.Configuration) error {
		return api.ExtractImagesFile(in, dir, nil, conf)
	}); err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
