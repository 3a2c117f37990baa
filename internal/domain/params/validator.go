package params

import "github.com/cerveceria/produccion-api/internal/domain"

// Resultado resultado de validar una lectura de parámetro.
// SinRango indica que el par (parámetro, unidad) no tiene rango configurado:
// la lectura se acepta igualmente pero queda marcada.
type Resultado struct {
	EtapaProduccion string
	Parametro       string
	UnidadMedida    string
	Valor           float64
	Valido          bool
	SinRango        bool
	Rango           *Range
}

// ResultadoBatch resultados de una validación por lote con sus conteos.
type ResultadoBatch struct {
	Resultados   []Resultado
	EnRango      int
	FueraDeRango int
}

// Lectura entrada de una validación por lote.
type Lectura struct {
	EtapaProduccion string
	Parametro       string
	Valor           float64
	UnidadMedida    string
}

// Validator valida lecturas de parámetros contra la configuración de rangos.
// Servicio puro: puede usarse con concurrencia arbitraria.
type Validator struct {
	cfg *Config
}

// NewValidator construye el validador con la configuración dada.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate valida una lectura individual. Un valor fuera de su rango devuelve
// *domain.OutOfRangeError; un par sin rango configurado se acepta sin acotar
// (decisión de política: preservar el comportamiento observado).
func (v *Validator) Validate(etapa, parametro string, valor float64, unidad string) (Resultado, error) {
	res := Resultado{
		EtapaProduccion: etapa,
		Parametro:       parametro,
		UnidadMedida:    unidad,
		Valor:           valor,
	}
	rango, ok := v.cfg.Lookup(parametro, unidad)
	if !ok {
		res.Valido = true
		res.SinRango = true
		return res, nil
	}
	res.Rango = &rango
	if !rango.Contiene(valor) {
		return res, &domain.OutOfRangeError{
			Parametro: parametro,
			Valor:     valor,
			Min:       rango.Min,
			Max:       rango.Max,
		}
	}
	res.Valido = true
	return res, nil
}

// ValidateBatch valida cada lectura y devuelve la lista completa de resultados
// con los conteos; nunca corta en el primer fallo. Un valor fuera de rango es
// un hallazgo, no un error de la operación.
func (v *Validator) ValidateBatch(lecturas []Lectura) ResultadoBatch {
	out := ResultadoBatch{Resultados: make([]Resultado, 0, len(lecturas))}
	for _, l := range lecturas {
		res, err := v.Validate(l.EtapaProduccion, l.Parametro, l.Valor, l.UnidadMedida)
		if err != nil {
			res.Valido = false
		}
		if res.Valido {
			out.EnRango++
		} else {
			out.FueraDeRango++
		}
		out.Resultados = append(out.Resultados, res)
	}
	return out
}
