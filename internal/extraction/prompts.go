package extraction

import (
	"fmt"
	"strings"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/sheet"
)

// extractSystemPrompt asks for raw candidates only. Splitting compound OPs
// and distributing time happen in code afterwards.
const extractSystemPrompt = `Eres un extractor de datos de hojas de produccion.
Recibes el contenido de una hoja de Excel aplanado: una fila por linea y las
celdas separadas por tabuladores.

Devuelve UNICAMENTE un arreglo JSON. Cada elemento es una linea de trabajo con
estos campos, copiados tal como aparecen en la hoja:
- fecha: la fecha de la hoja (busca "FECHA:"), sin convertir el formato;
  las fechas de las hojas van dia/mes/año
- operario: el nombre que sigue a "NOMBRE:"
- OP: la referencia de la orden de produccion tal como esta escrita
- actividad: la descripcion del trabajo
- tiempo: la duracion de la linea, como numero o texto
- tiempo_extra: horas extra si la hoja las indica, o null

Reglas:
- NO separes las OPs compuestas: "7027-7028-7029" o "7027/7028" se devuelven
  en un solo elemento con el tiempo compartido completo.
- NO repartas ni redondees el tiempo.
- Omite encabezados, totales y filas sin OP.
- Si la hoja no tiene lineas de trabajo devuelve [].

Ejemplo de entrada:
FECHA: 03/04/2025
NOMBRE: NELSON RANGEL
OP	DESCRIPCION	TIEMPO
7027/7028/7029	REUNION DE SEGUIMIENTO ECOPETROL	1,5

Ejemplo de salida:
[{"fecha":"03/04/2025","operario":"NELSON RANGEL","OP":"7027/7028/7029","actividad":"REUNION DE SEGUIMIENTO ECOPETROL","tiempo":"1,5","tiempo_extra":null}]`

func buildExtractUserPrompt(s sheet.Sheet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "HOJA: %s\n\n", s.Name)
	b.WriteString(s.Text())
	return b.String()
}
