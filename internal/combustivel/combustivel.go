package combustivel

// Tipo é o combustível de um veículo ou de um item de contrato.
type Tipo string

const (
	Gasolina Tipo = "Gasolina"
	Alcool   Tipo = "Álcool"
	Flex     Tipo = "Flex"
	Diesel   Tipo = "Diesel"
)

// Tipos na ordem em que aparecem nos formulários e relatórios.
var Tipos = []Tipo{Gasolina, Alcool, Flex, Diesel}

func Valido(s string) bool {
	for _, t := range Tipos {
		if string(t) == s {
			return true
		}
	}
	return false
}

func (t Tipo) String() string { return string(t) }
