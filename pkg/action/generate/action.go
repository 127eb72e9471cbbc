package generate

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmmoran/phpmodelgen/internal/parser"
	"github.com/cmmoran/phpmodelgen/pkg/errors"
	options "github.com/cmmoran/phpmodelgen/pkg/parser"
	"github.com/cmmoran/phpmodelgen/pkg/render"
)

// Generate parses the Go packages below opts.InDir and writes one
// <Class>.php per generated class into opts.OutDir. It returns the written
// paths in class order.
func Generate(opts *options.Options) ([]string, error) {
	return GenerateWithLogger(opts, slog.Default())
}

// GenerateWithLogger is Generate logging to logger.
func GenerateWithLogger(opts *options.Options, logger *slog.Logger) ([]string, error) {
	par, err := parser.NewWithOpts(opts)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		par.Logger = logger
	}
	if err = par.Parse(); err != nil {
		return nil, err
	}

	r, err := render.New(
		par.Opts.RenderProfile(),
		render.WithStrictTypes(!par.Opts.NoStrictTypes),
		render.WithLogger(par.Logger),
	)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(par.Opts.OutDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create %s", par.Opts.OutDir)
	}

	files := make([]string, 0, len(par.Classes))
	for _, c := range par.Classes {
		text, err := r.Render(c)
		if err != nil {
			return nil, errors.Wrapf(err, "render %s", c.Fqcn())
		}
		outFile := filepath.Clean(filepath.Join(par.Opts.OutDir, c.Name()+".php"))
		if err = os.WriteFile(outFile, []byte(text), 0o644); err != nil {
			return nil, errors.Wrapf(err, "write %s", outFile)
		}
		files = append(files, outFile)
	}

	par.Logger.Info("generated php classes",
		"namespace", par.Namespace,
		"profile", par.Opts.Profile,
		"dir", par.Opts.OutDir,
		"classes", len(files),
	)

	return files, nil
}
