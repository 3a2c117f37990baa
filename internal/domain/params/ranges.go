package params

import (
	"fmt"
	"math"
	"strings"
)

// Range rango aceptable [Min, Max] (inclusivo) para un parámetro de proceso.
type Range struct {
	Min float64
	Max float64
}

// Contiene indica si el valor cae dentro del rango (bordes incluidos).
func (r Range) Contiene(valor float64) bool {
	return valor >= r.Min && valor <= r.Max
}

type clave struct {
	Parametro string
	Unidad    string
}

// Config configuración de rangos de parámetros, cargada al arranque.
// La búsqueda es primero por par exacto (parámetro, unidad) y después por
// parámetro independiente de la unidad.
type Config struct {
	porPar       map[clave]Range
	porParametro map[string]Range
}

// DefaultConfig rangos canónicos del proceso cervecero.
func DefaultConfig() *Config {
	return &Config{
		porPar: map[clave]Range{
			{"TEMPERATURA", "CELSIUS"}:    {-50, 150},
			{"TEMPERATURA", "FAHRENHEIT"}: {-58, 302},
			{"PRESION", "BAR"}:            {0, 100},
			{"PRESION", "PSI"}:            {0, 100},
		},
		porParametro: map[string]Range{
			"PH":                  {0, 14},
			"DENSIDAD":            {0, 2},
			"AMARGOR":             {0, 120},
			"IBU":                 {0, 120},
			"COLOR":               {0, 80},
			"EBC":                 {0, 80},
			"ALCOHOL":             {0, 20},
			"NIVEL_LLENADO":       {0, 100},
			"HERMETICIDAD":        {0, 100},
			"AZUCARES_RESIDUALES": {0, 100},
			"PORCENTAJE":          {0, 100},
		},
	}
}

// Lookup busca el rango para (parámetro, unidad). Devuelve false si el par no
// tiene rango configurado.
func (c *Config) Lookup(parametro, unidad string) (Range, bool) {
	p := normalizar(parametro)
	u := normalizar(unidad)
	if r, ok := c.porPar[clave{p, u}]; ok {
		return r, true
	}
	if r, ok := c.porParametro[p]; ok {
		return r, true
	}
	return Range{}, false
}

// Validate verifica la consistencia de la configuración al arranque:
// todo rango debe ser finito y con Min < Max. Falla en el boot, no en el primer uso.
func (c *Config) Validate() error {
	check := func(nombre string, r Range) error {
		if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
			return fmt.Errorf("rango de %s con límites no finitos", nombre)
		}
		if r.Min >= r.Max {
			return fmt.Errorf("rango de %s inválido: min %.4g >= max %.4g", nombre, r.Min, r.Max)
		}
		return nil
	}
	for k, r := range c.porPar {
		if err := check(k.Parametro+"/"+k.Unidad, r); err != nil {
			return err
		}
	}
	for p, r := range c.porParametro {
		if err := check(p, r); err != nil {
			return err
		}
	}
	return nil
}

func normalizar(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
