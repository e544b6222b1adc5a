package terrain

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

const (
	NotchyName    = "notchy"
	FlatgrassName = "flat"
)

// Generators maps generator kind names to constructors.
var Generators = map[string]func(logger logrus.FieldLogger) Generator{
	NotchyName:    func(logger logrus.FieldLogger) Generator { return NewNotchyGenerator(logger) },
	FlatgrassName: func(logger logrus.FieldLogger) Generator { return NewFlatgrassGenerator(logger) },
}

// NewGenerator looks up kind in Generators.
func NewGenerator(kind string, logger logrus.FieldLogger) (Generator, error) {
	ctor, ok := Generators[kind]
	if !ok {
		return nil, fmt.Errorf("unknown generator %q (known: %v)", kind, Kinds())
	}
	return ctor(logger), nil
}

// Kinds returns the registered generator names in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(Generators))
	for kind := range Generators {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
