package menu

import "fmt"

// Navigation button types.
const (
	TypeBack      = "BACK"
	TypeHome      = "HOME"
	TypeNext      = "NEXT"
	TypePrevious  = "PREVIOUS"
	TypeInventory = "INVENTORY"
)

// DefaultTypeRegistry returns a registry holding the built-in button types.
func DefaultTypeRegistry() *TypeRegistry {
	registry := NewTypeRegistry()
	registry.MustRegister(DefaultButtonType, ButtonLoaderFunc(loadPlainButton))
	registry.MustRegister(TypeBack, navigationLoader(TypeBack, false))
	registry.MustRegister(TypeHome, navigationLoader(TypeHome, false))
	registry.MustRegister(TypeNext, navigationLoader(TypeNext, false))
	registry.MustRegister(TypePrevious, navigationLoader(TypePrevious, false))
	registry.MustRegister(TypeInventory, navigationLoader(TypeInventory, true))
	return registry
}

func loadPlainButton(Section, string, DefaultButtonValue) (*Button, error) {
	return &Button{}, nil
}

func navigationLoader(kind string, requireTarget bool) ButtonLoader {
	return ButtonLoaderFunc(func(node Section, path string, _ DefaultButtonValue) (*Button, error) {
		payload := NavigationPayload{
			Kind:      kind,
			Inventory: node.GetString(joinPath(path, "inventory"), ""),
			Plugin:    node.GetString(joinPath(path, "plugin"), ""),
			Arguments: node.GetStringList(joinPath(path, "arguments")),
		}
		if requireTarget && payload.Inventory == "" {
			return nil, fmt.Errorf("menu: %s button %s requires an inventory", kind, path)
		}
		return &Button{Payload: payload}, nil
	})
}
