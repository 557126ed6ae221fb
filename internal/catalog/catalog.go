// Package catalog holds the marketing copy and the placeholder hosting data
// shown on the landing page and dashboard. The default catalog is embedded;
// operators can point CATALOG_PATH at a YAML file to override it.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Catalog is everything the landing page and dashboard show that is not
// tied to the signed-in user.
type Catalog struct {
	Brand        Brand         `yaml:"brand"`
	Hero         Hero          `yaml:"hero"`
	Features     []Feature     `yaml:"features"`
	Plans        []Plan        `yaml:"plans"`
	Benefits     []string      `yaml:"benefits"`
	SidebarLinks []NavLink     `yaml:"sidebar"`
	Stats        []Stat        `yaml:"stats"`
	Accounts     []Account     `yaml:"accounts"`
	QuickActions []QuickAction `yaml:"quick_actions"`
	Footer       Footer        `yaml:"footer"`
	Contact      Contact       `yaml:"contact"`
}

// Brand names the product in the navbar, footer and emails.
type Brand struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
}

// Hero is the landing page banner.
type Hero struct {
	Badge        string   `yaml:"badge"`
	Title        string   `yaml:"title"`
	Highlight    string   `yaml:"highlight"`
	Subtitle     string   `yaml:"subtitle"`
	PrimaryCTA   string   `yaml:"primary_cta"`
	SecondaryCTA string   `yaml:"secondary_cta"`
	Badges       []string `yaml:"badges"`
	PreviewStats []Stat   `yaml:"preview_stats"`
}

// Feature is one card in the features grid. Icon names an icon from the
// components package.
type Feature struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Plan is a hosting package on the pricing table. Popular highlights it.
type Plan struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Period      string   `yaml:"period"`
	Popular     bool     `yaml:"popular"`
	Features    []string `yaml:"features"`
}

// NavLink is a labelled link, used for the sidebar and footer columns.
type NavLink struct {
	Label  string `yaml:"label"`
	Href   string `yaml:"href"`
	Icon   string `yaml:"icon"`
	Active bool   `yaml:"active"`
}

// Stat is a headline figure on the dashboard or in the hero preview.
type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Icon  string `yaml:"icon"`
}

// Account is one hosting account on the dashboard.
type Account struct {
	ID        string `yaml:"id"`
	Domain    string `yaml:"domain"`
	Type      string `yaml:"type"`
	Status    string `yaml:"status"`
	Storage   Usage  `yaml:"storage"`
	Bandwidth Usage  `yaml:"bandwidth"`
}

// IsWordPress reports whether the account runs WordPress, which decides
// whether the dashboard offers a WordPress admin button.
func (a Account) IsWordPress() bool {
	return a.Type == "WordPress"
}

// Usage is a consumed amount against a limit, both in Unit.
type Usage struct {
	Used  float64 `yaml:"used"`
	Limit float64 `yaml:"limit"`
	Unit  string  `yaml:"unit"`
}

// Percent returns Used as a whole percentage of Limit, clamped to 0..100.
func (u Usage) Percent() int {
	if u.Limit <= 0 {
		return 0
	}
	p := math.Round(u.Used / u.Limit * 100)
	return int(math.Max(0, math.Min(100, p)))
}

// UsedLabel renders the used amount, switching GB below one to MB.
func (u Usage) UsedLabel() string {
	if u.Unit == "GB" && u.Used > 0 && u.Used < 1 {
		return formatAmount(u.Used*1000, "MB")
	}
	return formatAmount(u.Used, u.Unit)
}

// LimitLabel renders the limit.
func (u Usage) LimitLabel() string {
	return formatAmount(u.Limit, u.Unit)
}

func formatAmount(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// QuickAction is a shortcut button on the dashboard.
type QuickAction struct {
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
}

// Footer holds the link columns at the bottom of the landing page.
type Footer struct {
	Columns []FooterColumn `yaml:"columns"`
}

// FooterColumn is a titled group of footer links.
type FooterColumn struct {
	Title string    `yaml:"title"`
	Links []NavLink `yaml:"links"`
}

// Contact is the support contact shown in the footer.
type Contact struct {
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path. An empty path yields the default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML. Unknown keys are rejected so typos surface at load time.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	var errs []error
	if c.Brand.Name == "" {
		errs = append(errs, errors.New("brand.name is required"))
	}
	for i, p := range c.Plans {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("plans[%d].name is required", i))
		}
	}
	for i, a := range c.Accounts {
		if a.Domain == "" {
			errs = append(errs, fmt.Errorf("accounts[%d].domain is required", i))
		}
	}
	return errors.Join(errs...)
}
