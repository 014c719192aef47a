package skylar

import (
	"bufio"
	"os"
	"strings"
)

type Properties map[string]string

func (self Properties) Get(key string) string {
	v, _ := self[key]
	return v
}

func (self Properties) GetDefault(key string, defaultValue string) string {
	if v, ok := self[key]; ok {
		return v
	}
	return defaultValue
}

func (self Properties) Add(key, value string) {
	self[key] = value
}

func (self Properties) Merge(other Properties) {
	for k, v := range other {
		self[k] = v
	}
}

// LoadProperties reads a property file of name=value lines.
// Blank lines and lines starting with '#' are skipped.
func LoadProperties(filename string) (Properties, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p := make(Properties)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, NewConfigError("invalid property line: %s", line)
		}
		p[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func OutputProperties(p Properties) {
	Printf("***************** properties *****************")
	if p != nil {
		for k, v := range p {
			Printf("\"%s\"=\"%s\"", k, v)
		}
	}
	Printf("**********************************************")
}
