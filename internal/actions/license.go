package actions

import (
	"log/slog"

	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/ctxkeys"
)

var licenseTemplates = map[string]string{
	"MIT":         "LICENSE.mit",
	"GNU GPL v3":  "LICENSE.gpl-3.0",
	"GNU AGPL v3": "LICENSE.agpl-3.0",
}

// License writes the LICENSE file for the configured license.
type License struct{}

func (License) Meta() capability.Meta {
	return capability.Meta{
		Name:           "license",
		Description:    "Generates the LICENSE file unless the project is proprietary.",
		DefaultEnabled: true,
	}
}

func (License) Run(d Data) error {
	id, ok := d.Context.StringAt(ctxkeys.License)
	if !ok || id == ctxkeys.LicenseProprietary {
		return nil
	}
	tmpl, ok := licenseTemplates[id]
	if !ok {
		slog.Debug("license: no template", "license", id)
		return nil
	}
	return d.write("LICENSE", tmpl)
}
