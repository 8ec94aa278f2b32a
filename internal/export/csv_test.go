package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billetera/internal/core"
)

func TestWriteCSVScenario(t *testing.T) {
	txns := []core.Transaction{
		{
			ID: "t1", Description: "Nómina", Category: core.CategoryWork,
			Amount: core.Money{Cents: 100000}, Kind: core.Income, Date: core.NewDate(2026, 2, 10),
		},
		{
			ID: "t2", Description: "Supermercado", Category: core.CategoryFood,
			Amount: core.Money{Cents: 30000}, Kind: core.Expense, Date: core.NewDate(2026, 2, 12),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, txns))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "output must start with a BOM")

	lines := strings.Split(strings.TrimRight(string(out[3:]), "\n"), "\n")
	// Header, two data rows, blank separator, balance row.
	require.Len(t, lines, 5)

	assert.Equal(t, "Fecha,Descripción,Categoría,Tipo,Monto", lines[0])
	assert.Equal(t, "10/02/2026,Nómina,👔 Trabajo,Ingreso,1000.00", lines[1])
	assert.Equal(t, "12/02/2026,Supermercado,🍔 Comida,Gasto,-300.00", lines[2])
	assert.Equal(t, "", lines[3])
	assert.Equal(t, ",,,BALANCE TOTAL,700.00", lines[4])
}

func TestWriteCSVNormalizesUnknownCategory(t *testing.T) {
	txns := []core.Transaction{{
		ID: "t1", Description: "Algo", Category: core.Category("🎮 Juegos"),
		Amount: core.Money{Cents: 500}, Kind: core.Expense, Date: core.NewDate(2026, 2, 1),
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, txns))
	assert.Contains(t, buf.String(), "💡 Otros")
}

func TestWriteCSVEmptyLedger(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	require.True(t, errors.Is(err, ErrEmptyLedger))
	assert.Zero(t, buf.Len(), "nothing may be written on error")
}
