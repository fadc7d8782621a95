package rules

import "strconv"

// Error messages shown next to each input.
const (
	MessageFullName        = "Nombre completo debe tener más de 6 letras y al menos un espacio."
	MessageEmail           = "Email no es válido."
	MessagePassword        = "Contraseña debe tener al menos 8 caracteres, formados por letras y números."
	MessageConfirmPassword = "Las contraseñas no coinciden."
	MessageAge             = "Edad debe ser un número entero mayor o igual a 18."
	MessagePhone           = "Teléfono debe tener al menos 7 dígitos sin espacios ni caracteres especiales."
	MessageAddress         = "Dirección debe tener al menos 5 caracteres, con letras, números y un espacio en el medio."
	MessageCity            = "Ciudad debe tener al menos 3 caracteres."
	MessagePostalCode      = "Código Postal debe tener al menos 3 caracteres."
	MessageDNI             = "DNI debe ser un número de 7 u 8 dígitos."
)

// Default returns the registration form rule table.
func Default() Table {
	return MustNewTable(RegistrationSpecs()...)
}

// RegistrationSpecs returns a fresh copy of the registration field specs so
// callers can extend or reorder them before building a table.
func RegistrationSpecs() []FieldSpec {
	return []FieldSpec{
		{
			ID:           FieldFullName,
			Predicate:    Pure(FullName),
			ErrorMessage: MessageFullName,
			Constraints:  []Constraint{minLength(7)},
		},
		{
			ID:           FieldEmail,
			Predicate:    Pure(Email),
			ErrorMessage: MessageEmail,
			Constraints: []Constraint{
				{Kind: ConstraintFormat, Params: map[string]string{"format": "email"}},
				pattern(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
			},
		},
		{
			ID:           FieldPassword,
			Predicate:    Pure(Password),
			ErrorMessage: MessagePassword,
			Constraints: []Constraint{
				minLength(8),
				{Kind: ConstraintFormat, Params: map[string]string{"format": "password"}},
			},
		},
		{
			ID:           FieldConfirmPassword,
			Predicate:    ConfirmPassword,
			ErrorMessage: MessageConfirmPassword,
			Constraints: []Constraint{
				{Kind: ConstraintEqualsField, Params: map[string]string{"field": FieldPassword}},
				{Kind: ConstraintFormat, Params: map[string]string{"format": "password"}},
			},
		},
		{
			ID:           FieldAge,
			Predicate:    Pure(Age),
			ErrorMessage: MessageAge,
			Constraints: []Constraint{
				{Kind: ConstraintMin, Params: map[string]string{"value": "18"}},
				{Kind: ConstraintFormat, Params: map[string]string{"format": "integer"}},
			},
		},
		{
			ID:           FieldPhone,
			Predicate:    Pure(Phone),
			ErrorMessage: MessagePhone,
			Constraints:  []Constraint{pattern(`^\d{7,}$`)},
		},
		{
			ID:           FieldAddress,
			Predicate:    Pure(Address),
			ErrorMessage: MessageAddress,
			Constraints:  []Constraint{minLength(5)},
		},
		{
			ID:           FieldCity,
			Predicate:    Pure(City),
			ErrorMessage: MessageCity,
			Constraints:  []Constraint{minLength(3)},
		},
		{
			ID:           FieldPostalCode,
			Predicate:    Pure(PostalCode),
			ErrorMessage: MessagePostalCode,
			Constraints:  []Constraint{minLength(3)},
		},
		{
			ID:           FieldDNI,
			Predicate:    Pure(DNI),
			ErrorMessage: MessageDNI,
			Constraints:  []Constraint{pattern(`^\d{7,8}$`)},
		},
	}
}

func minLength(n int) Constraint {
	return Constraint{Kind: ConstraintMinLength, Params: map[string]string{"value": strconv.Itoa(n)}}
}

func pattern(expr string) Constraint {
	return Constraint{Kind: ConstraintPattern, Params: map[string]string{"pattern": expr}}
}
