// Package fixtures читает тестовые данные из JSON и отдаёт значения по
// пути через точку, например "credentials.username".
package fixtures

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

//go:embed data/default.json
var defaultData []byte

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Credentials struct {
	Username string
	Password string
}

type Checkout struct {
	FirstName  string
	LastName   string
	PostalCode string
}

type Pricing struct {
	Subtotal string
	Tax      string
	Total    string
}

// Data: разобранный документ. Только для чтения, можно делить между тестами.
type Data struct {
	root map[string]any
	log  *zap.Logger
}

// Load читает файл; пустой путь означает встроенные данные.
func Load(path string, log *zap.Logger) (*Data, error) {
	if path == "" {
		return Default(log)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение тестовых данных %s: %w", path, err)
	}
	return Parse(raw, log)
}

func Default(log *zap.Logger) (*Data, error) {
	return Parse(defaultData, log)
}

func Parse(raw []byte, log *zap.Logger) (*Data, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("разбор тестовых данных: %w", err)
	}
	return &Data{root: root, log: log.Named("fixtures")}, nil
}

// Get спускается по ключам пути. Промежуточные значения должны быть объектами.
func (d *Data) Get(path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var node any = d.root
	for _, key := range strings.Split(path, ".") {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// String возвращает скаляр строкой. Для отсутствующего пути или объекта
// пишет предупреждение и возвращает "".
func (d *Data) String(path string) string {
	v, ok := d.Get(path)
	if !ok {
		d.log.Warn("Нет тестовых данных", zap.String("path", path))
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		d.log.Warn("Тестовые данные не скаляр", zap.String("path", path))
		return ""
	}
}

func (d *Data) Credentials() Credentials {
	return Credentials{
		Username: d.String("credentials.username"),
		Password: d.String("credentials.password"),
	}
}

func (d *Data) Checkout() Checkout {
	return Checkout{
		FirstName:  d.String("checkout.firstName"),
		LastName:   d.String("checkout.lastName"),
		PostalCode: d.String("checkout.postalCode"),
	}
}

func (d *Data) Pricing() Pricing {
	return Pricing{
		Subtotal: d.String("pricing.subtotal"),
		Tax:      d.String("pricing.tax"),
		Total:    d.String("pricing.total"),
	}
}
