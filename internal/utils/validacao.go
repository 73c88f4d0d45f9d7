package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gestaofrota/api-combustivel/internal/combustivel"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = novoValidador()

func novoValidador() *validator.Validate {
	v := validator.New()
	// decimal.Decimal é validado como float64 (gt, gte, ...)
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("combustivel", func(fl validator.FieldLevel) bool {
		return combustivel.Valido(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		nome := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if nome == "-" || nome == "" {
			return f.Name
		}
		return nome
	})
	return v
}

// ErroValidacao é o corpo das respostas 422.
type ErroValidacao struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func (e *ErroValidacao) Error() string { return e.Detail }

// NovoErroValidacao monta um erro de um único campo.
func NovoErroValidacao(campo, msg string) *ErroValidacao {
	return &ErroValidacao{Detail: "dados inválidos", Fields: map[string]string{campo: msg}}
}

// Validar roda as tags `validate` e devolve *ErroValidacao quando algo falha.
func Validar(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ErroValidacao{Detail: "dados inválidos", Fields: map[string]string{}}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = mensagemCampo(fe)
	}
	return out
}

func mensagemCampo(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "e-mail inválido"
	case "gt":
		return "deve ser maior que " + fe.Param()
	case "gte":
		return "deve ser maior ou igual a " + fe.Param()
	case "min":
		return "mínimo de " + fe.Param()
	case "max":
		return "máximo de " + fe.Param()
	case "oneof":
		return "deve ser um de: " + fe.Param()
	case "combustivel":
		return "combustível inválido"
	}
	return "valor inválido"
}

// DecodificarEValidar lê o JSON do corpo e valida. Em caso de erro já responde
// (400 para JSON inválido, 422 para validação) e devolve false.
func DecodificarEValidar(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return false
	}
	if err := Validar(dst); err != nil {
		ResponderErro(w, err)
		return false
	}
	return true
}

// ResponderErro responde 422 para erros de validação e 500 para o resto.
func ResponderErro(w http.ResponseWriter, err error) {
	var ev *ErroValidacao
	if errors.As(err, &ev) {
		ResponderJSON(w, http.StatusUnprocessableEntity, ev)
		return
	}
	http.Error(w, "erro interno", http.StatusInternalServerError)
}

func ResponderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
