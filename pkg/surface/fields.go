package surface

// Field describes how an input is presented on the page.
type Field struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	InputType   string `json:"input_type"`
	Placeholder string `json:"placeholder,omitempty"`
}

var fieldCatalog = map[string]Field{
	"fullName":        {Label: "Nombre completo", InputType: "text", Placeholder: "Nombre y apellido"},
	"email":           {Label: "Email", InputType: "email", Placeholder: "nombre@dominio.com"},
	"password":        {Label: "Contraseña", InputType: "password"},
	"confirmPassword": {Label: "Repetir contraseña", InputType: "password"},
	"age":             {Label: "Edad", InputType: "number"},
	"phone":           {Label: "Teléfono", InputType: "tel", Placeholder: "Solo dígitos"},
	"address":         {Label: "Dirección", InputType: "text", Placeholder: "Calle 123"},
	"city":            {Label: "Ciudad", InputType: "text"},
	"postalCode":      {Label: "Código Postal", InputType: "text"},
	"dni":             {Label: "DNI", InputType: "text", Placeholder: "7 u 8 dígitos"},
}

// Describe returns presentation metadata for id. Unknown ids fall back to a
// plain text input labelled with the id itself.
func Describe(id string) Field {
	f, ok := fieldCatalog[id]
	if !ok {
		return Field{ID: id, Label: id, InputType: "text"}
	}
	f.ID = id
	return f
}

// Sensitive reports whether the input masks what is typed.
func (f Field) Sensitive() bool {
	return f.InputType == "password"
}
