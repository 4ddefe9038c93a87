package conf

type Bootstrap struct {
	Server   *Server
	Data     *Data
	Reporter *Reporter
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

type Reporter struct {
	Report      *Report      `json:"report"`
	Corpus      *Corpus      `json:"corpus"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type Report struct {
	Themes          int32    `json:"themes"`
	OutletSamples   int32    `json:"outlet_samples"`
	MajorStories    int32    `json:"major_stories"`
	Journalists     int32    `json:"journalists"`
	SynopsisRunes   int32    `json:"synopsis_runes"`
	TakeoutsPerPage int32    `json:"takeouts_per_page"`
	Palette         []string `json:"palette"`
	LogoPath        string   `json:"logo_path"`
	PdfFont         string   `json:"pdf_font"`
	PdfFontBold     string   `json:"pdf_font_bold"`
}

type Corpus struct {
	Source  string `json:"source"`
	Fixture string `json:"fixture"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
