package cli

const usageTemplate = `LinkSpark - QR code generator

Usage:
  linkspark [flags] <command> [args]

Commands:
  generate <type> [key=value...] [style.key=value...]
                          Build a payload, optionally render and save it
        --out FILE        write the image (png, jpeg or svg by extension)
        --format FORMAT   override the image format
        --save            save the configuration to history
        --label TEXT      history label
        --no-prompt       do not ask for missing fields
  watch <type> [--out FILE]
                          Edit a configuration line by line with live preview
  history [query]         List saved QR codes, optionally filtered
  show <id>               Show a saved entry
  load <id> [--out FILE]  Restore a saved entry and regenerate its payload
  delete <id>             Delete a saved entry
  duplicate <id>          Copy a saved entry
  label <id> [text]       Change or clear the label of an entry
  clear [--yes]           Delete all saved entries
  contact                 Send a message (--name, --email, --message, --list)
  events [--limit N]      Show recent usage events
  types [type]            List QR types and their fields
  help                    Show this message

Style keys:
  size, margin, ec (L, M, Q, H), dot_color, dot_shape (square, rounded, dots),
  background, corner_square_color, corner_square_shape (square, dot, extra-rounded),
  corner_dot_color, corner_dot_shape, logo (file or none), logo_size,
  logo_shape (square, circle), logo_opacity

Examples:
  linkspark generate url url=https://example.com --out site.png
  linkspark generate wifi wifi_ssid=Home wifi_encryption=WPA --save --label "Home Wi-Fi"
  linkspark generate upi upi_id=shop@bank upi_amount=250 style.dot_shape=dots --out pay.svg
`

const generateTemplate = `
=== {{.Type}} QR code ===

Payload ({{.Length}} chars):
{{.Payload}}
{{- if .Output }}

Image:   {{.Output}} ({{.Format}})
{{- end}}
{{- with .Entry }}
Saved:   {{.ID}} ({{.DisplayName}})
{{- end}}
`

const historyTemplate = `
{{- if .Entries -}}
{{- if .Query }}Found {{len .Entries}} entries matching "{{.Query}}":
{{- else }}Saved QR codes ({{len .Entries}}):
{{- end}}
{{range $i, $e := .Entries}}
{{$e.ID}}  {{printf "%-12s" $e.Type}} {{$e.CreatedAt.Format "2006-01-02 15:04"}}  {{truncate 40 $e.DisplayName}}
{{- end}}
{{else -}}
{{- if .Query }}No entries match "{{.Query}}".
{{- else }}History is empty. Use 'linkspark generate <type> ... --save' to add one.
{{- end}}
{{end -}}
`

const showTemplate = `
=== {{.DisplayName}} ===

ID:      {{.ID}}
Type:    {{.Type}}
Created: {{.CreatedAt.Format "2006-01-02 15:04:05"}}

Input:
{{- range $k, $v := .Input }}
  {{$k}}: {{truncate 60 $v}}
{{- end}}

Style:
  size {{.Style.Size}}px, margin {{.Style.Margin}}px, error correction {{.Style.ErrorCorrection}}
  dots {{.Style.DotShape}} {{.Style.DotColor}} on {{.Style.Background}}
  corners {{.Style.CornerSquareShape}} {{.Style.CornerSquareColor}}, {{.Style.CornerDotShape}} {{.Style.CornerDotColor}}
{{- with .Style.Logo }}
  logo {{.Shape}}, size {{.Size}}, opacity {{.Opacity}}
{{- end}}
{{- if .Preview }}
Preview: {{len .Preview}} bytes PNG
{{- end}}
`

const loadTemplate = `
=== {{.Name}} ===

ID:      {{.ID}}
{{- if .Payload }}
Payload: {{.Payload}}
{{- else }}
Payload: (not ready)
{{- end}}
{{- range .Problems }}
Warning: {{.}}
{{- end}}
{{- if .Output }}
Image:   {{.Output}}
{{- end}}
`

const eventsTemplate = `
{{- if . -}}
Recent events:
{{range .}}
{{.CreatedAt.Format "2006-01-02 15:04:05"}}  {{printf "%-10s" .Name}}
{{- range $k, $v := .Params}} {{$k}}={{$v}}{{end}}
{{- end}}
{{else -}}
No events recorded.
{{end -}}
`

const typesTemplate = `
{{- range . }}
{{.Type}}
{{- range .Fields }}
  {{printf "%-18s" .Name}} {{.Label}}{{if .Required}} (required){{end}}
{{- end}}
{{end -}}
`

const contactListTemplate = `
{{- if . -}}
{{range .}}
#{{.ID}} {{.CreatedAt.Format "2006-01-02 15:04"}} {{.Name}} <{{.Email}}>
  {{truncate 70 .Message}}
{{- end}}
{{else -}}
No messages sent.
{{end -}}
`

const watchHelpTemplate = `
  key=value          set an input field (empty value clears it)
  style.key=value    change the style
  :type <type>       switch the QR type, entered fields are kept
  :save [label]      save the current configuration to history
  :quit              leave
`
