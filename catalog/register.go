package catalog

import (
	"sentinel-refactor/refactor"
	"sentinel-refactor/rules"
)

// RegisterAll installs every rule and its matching provider into the given
// registries. Call once from the composition root.
func RegisterAll(ruleRegistry *rules.Registry, providerRegistry *refactor.Registry) {
	ruleRegistry.RegisterRule(&GlideNestedQueryRule{})
	providerRegistry.RegisterProvider(&GlideNestedQueryProvider{})

	ruleRegistry.RegisterRule(&TSNoAnyRule{})
	providerRegistry.RegisterProvider(&TSNoAnyProvider{})

	ruleRegistry.RegisterRule(&NoConsoleLogRule{})
	providerRegistry.RegisterProvider(&NoConsoleLogProvider{})

	ruleRegistry.RegisterRule(&PreferConstRule{})
	providerRegistry.RegisterProvider(&PreferConstProvider{})
}
