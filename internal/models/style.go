package models

// ErrorCorrection уровень коррекции ошибок QR-символа
type ErrorCorrection string

const (
	ErrorCorrectionL ErrorCorrection = "L" // ~7% восстановления
	ErrorCorrectionM ErrorCorrection = "M" // ~15%
	ErrorCorrectionQ ErrorCorrection = "Q" // ~25%
	ErrorCorrectionH ErrorCorrection = "H" // ~30%, минимальная емкость
)

// DotShape форма модулей (точек) QR-кода
type DotShape string

const (
	DotSquare  DotShape = "square"
	DotRounded DotShape = "rounded"
	DotCircle  DotShape = "dots"
)

// CornerShape форма угловых элементов (finder patterns)
type CornerShape string

const (
	CornerSquare       CornerShape = "square"
	CornerDot          CornerShape = "dot"
	CornerExtraRounded CornerShape = "extra-rounded"
)

// LogoShape форма обрезки логотипа
type LogoShape string

const (
	LogoSquare LogoShape = "square"
	LogoCircle LogoShape = "circle"
)

// Logo описывает логотип в центре QR-кода.
// Source хранит исходное загруженное изображение: обработанная версия
// всегда пересчитывается из него.
type Logo struct {
	Source  []byte    `json:"source"`  // Source исходные байты изображения
	Shape   LogoShape `json:"shape"`   // Shape square или circle
	Size    float64   `json:"size"`    // Size доля стороны QR-кода, [0.1, 0.5]
	Opacity float64   `json:"opacity"` // Opacity прозрачность, [0, 1]
	Margin  int       `json:"margin"`  // Margin отступ вокруг логотипа в пикселях
}

// StyleOptions визуальная конфигурация QR-кода.
// Data содержит актуальный payload и не сохраняется в истории.
type StyleOptions struct {
	Logo              *Logo           `json:"logo,omitempty"`
	Data              string          `json:"data,omitempty"`
	ErrorCorrection   ErrorCorrection `json:"error_correction"`
	DotColor          string          `json:"dot_color"`
	DotShape          DotShape        `json:"dot_shape"`
	Background        string          `json:"background"`
	CornerSquareColor string          `json:"corner_square_color"`
	CornerSquareShape CornerShape     `json:"corner_square_shape"`
	CornerDotColor    string          `json:"corner_dot_color"`
	CornerDotShape    CornerShape     `json:"corner_dot_shape"`
	Size              int             `json:"size"`
	Margin            int             `json:"margin"`
}

// Clone returns a deep copy so the receiver can never be mutated through it.
func (s StyleOptions) Clone() StyleOptions {
	if s.Logo != nil {
		logo := *s.Logo
		logo.Source = append([]byte(nil), s.Logo.Source...)
		s.Logo = &logo
	}
	return s
}

// WithoutData returns a copy of the options with the payload cleared.
func (s StyleOptions) WithoutData() StyleOptions {
	c := s.Clone()
	c.Data = ""
	return c
}
