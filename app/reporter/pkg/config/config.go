package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	Report      ReportConfig      `yaml:"report"`
	Corpus      CorpusConfig      `yaml:"corpus"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
}

// ReportConfig 报告生成相关配置，PDFFont 替换 PDF 内嵌字体（中日韩客户名需要）
type ReportConfig struct {
	Themes          int      `yaml:"themes"`
	OutletSamples   int      `yaml:"outlet_samples"`
	MajorStories    int      `yaml:"major_stories"`
	Journalists     int      `yaml:"journalists"`
	SynopsisRunes   int      `yaml:"synopsis_runes"`
	TakeoutsPerPage int      `yaml:"takeouts_per_page"`
	Palette         []string `yaml:"palette"`
	LogoPath        string   `yaml:"logo_path"`
	PDFFont         string   `yaml:"pdf_font"`
	PDFFontBold     string   `yaml:"pdf_font_bold"`
}

// CorpusConfig 语料来源：file 读取 YAML 样例，postgres 读取监测库
type CorpusConfig struct {
	Source  string `yaml:"source"`
	Fixture string `yaml:"fixture"`
}

// 语料来源
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN 返回 lib/pq 连接串
func (c DBConfig) DSN() string {
	ssl := c.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, ssl)
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置，用于限制报告生成频率
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse 解析 YAML 配置并校验语料来源
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	switch cfg.Corpus.Source {
	case "":
		cfg.Corpus.Source = SourceFile
	case SourceFile, SourcePostgres:
	default:
		return nil, fmt.Errorf("unknown corpus source %q", cfg.Corpus.Source)
	}
	if cfg.Corpus.Source == SourceFile && cfg.Corpus.Fixture == "" {
		return nil, fmt.Errorf("corpus.fixture is required when source is %q", SourceFile)
	}
	return &cfg, nil
}
