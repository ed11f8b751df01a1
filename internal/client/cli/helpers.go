package cli

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/iudanet/linkspark/internal/models"
	"github.com/iudanet/linkspark/internal/payload"
	"github.com/iudanet/linkspark/internal/render"
	"github.com/iudanet/linkspark/internal/style"
	"github.com/iudanet/linkspark/internal/validation"
)

const (
	// stylePrefix отличает параметры стиля от полей ввода
	stylePrefix = "style."
	// styleLogo путь к файлу логотипа или "none"
	styleLogo = "logo"
)

var templateFuncs = template.FuncMap{
	"truncate": func(n int, s string) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return string(r[:n]) + "..."
	},
}

// print выполняет шаблон вывода
func (c *Cli) print(name, text string, data any) error {
	tmpl, err := template.New(name).Funcs(templateFuncs).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(c.io, data); err != nil {
		return fmt.Errorf("failed to render %s output: %w", name, err)
	}
	return nil
}

// newFlagSet создает набор флагов, который не печатает ошибки сам
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseInterleaved разбирает флаги, стоящие вперемешку с позиционными аргументами
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// splitAssignments делит key=value аргументы на поля ввода и параметры стиля
func splitAssignments(args []string) (fields, styles map[string]string, err error) {
	fields = map[string]string{}
	styles = map[string]string{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, nil, fmt.Errorf("invalid argument %q: expected key=value", arg)
		}
		if name, isStyle := strings.CutPrefix(key, stylePrefix); isStyle {
			styles[name] = value
			continue
		}
		fields[key] = value
	}
	return fields, styles, nil
}

// styleChanges переводит параметры стиля в изменения; логотип читается из файла
func styleChanges(values map[string]string) ([]style.Change, error) {
	var changes []style.Change

	rest := make(map[string]string, len(values))
	for k, v := range values {
		if k == styleLogo {
			continue
		}
		rest[k] = v
	}

	if path, ok := values[styleLogo]; ok {
		if strings.EqualFold(path, "none") {
			changes = append(changes, style.WithoutLogo())
		} else {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read logo: %w", err)
			}
			changes = append(changes, style.WithLogo(data))
		}
	}

	parsed, err := style.ParseChanges(rest)
	if err != nil {
		return nil, err
	}
	return append(changes, parsed...), nil
}

// buildStyle применяет параметры стиля к base
func buildStyle(base models.StyleOptions, values map[string]string) (models.StyleOptions, error) {
	changes, err := styleChanges(values)
	if err != nil {
		return base, err
	}
	return style.Apply(base, changes...)
}

// mediaFields поля, значения которых могут быть путями к файлам
var mediaFields = map[string]string{
	models.FieldAudioURL: "audio/",
	models.FieldImageURL: "image/",
}

// resolveMedia заменяет пути к файлам data URL-ами для типа audio-image
func resolveMedia(t models.QRType, fields map[string]string) (map[string]string, error) {
	if t != models.TypeAudioImage {
		return fields, nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
		prefix, isMedia := mediaFields[k]
		if !isMedia || v == "" || validation.IsDataURL(v, "") {
			continue
		}
		dataURL, err := fileDataURL(v)
		if err != nil {
			return nil, err
		}
		if !validation.IsDataURL(dataURL, prefix) {
			return nil, fmt.Errorf("%s: %s is not an %s file", k, v, strings.TrimSuffix(prefix, "/"))
		}
		out[k] = dataURL
	}
	return out, nil
}

// fileDataURL читает файл и кодирует его в data URL
func fileDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Определяем MIME тип по расширению, затем по содержимому
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	mediaType, _, _ = strings.Cut(mediaType, ";")

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// outputFormat выбирает формат по флагу или расширению файла
func outputFormat(path, flagValue string) (render.Format, error) {
	if flagValue != "" {
		return render.ParseFormat(flagValue)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return render.FormatJPEG, nil
	case ".svg":
		return render.FormatSVG, nil
	default:
		return render.FormatPNG, nil
	}
}

// exportImage рисует QR-код и записывает его в файл
func (c *Cli) exportImage(ctx context.Context, data string, st models.StyleOptions, path string, format render.Format) error {
	sym, warnings, err := render.Compose(ctx, data, st)
	for _, w := range warnings {
		c.io.Printf("Warning: %s\n", w)
	}
	if err != nil {
		return fmt.Errorf("failed to render QR code: %w", err)
	}

	return c.writeSymbol(ctx, sym, path, format)
}

// writeSymbol записывает готовый QR-код в файл
func (c *Cli) writeSymbol(ctx context.Context, sym *render.Symbol, path string, format render.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := sym.Export(f, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s image: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	c.tracker.Track(ctx, models.EventDownload, map[string]string{"format": string(format)})
	return nil
}

// printDiagnostics выводит предупреждения форматтера
func (c *Cli) printDiagnostics(res payload.Result) {
	for _, d := range res.Diagnostics {
		c.io.Printf("%s\n", d.String())
	}
}

// promptMissing запрашивает незаполненные обязательные и секретные поля
func (c *Cli) promptMissing(t models.QRType, fields map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}

	for _, spec := range models.FieldsFor(t) {
		if out[spec.Name] != "" || (!spec.Required && !spec.Secret) {
			continue
		}
		if spec.Secret && isOpenNetwork(out) {
			continue
		}

		prompt := spec.Label + ": "
		var (
			value string
			err   error
		)
		if spec.Secret {
			value, err = c.io.ReadPassword(prompt)
		} else {
			value, err = c.io.ReadInput(prompt)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", spec.Name, err)
		}
		if value != "" {
			out[spec.Name] = value
		}
	}
	return out, nil
}

// isOpenNetwork сеть без пароля
func isOpenNetwork(fields map[string]string) bool {
	switch strings.ToUpper(strings.TrimSpace(fields[models.FieldWiFiEncryption])) {
	case "NONE", "NOPASS", "OPEN":
		return true
	}
	return false
}
