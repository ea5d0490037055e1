package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/warner-inmobiliaria/internal/domain/identity"
)

func TestClean_MayusculasTildesYEspacios(t *testing.T) {
	assert.Equal(t, "JUAN PEREZ", identity.Clean("  juan   Pérez "))
	assert.Equal(t, "ALONSO CASTANO", identity.Clean("Alonso Castaño"))
	assert.Equal(t, "", identity.Clean("   "))
	assert.Equal(t, "", identity.Clean(""))
}

func TestNormalize_AplicaAlias(t *testing.T) {
	n := identity.NewNormalizer(map[string]string{
		"Agustin Reynoso": "AGUSTIN ISAIAS REYNOSO",
	})
	assert.Equal(t, "AGUSTIN ISAIAS REYNOSO", n.Normalize("agustín  reynoso"))
	assert.Equal(t, "AGUSTIN ISAIAS REYNOSO", n.Normalize("AGUSTIN ISAIAS REYNOSO"))
	assert.Equal(t, "MARIA GOMEZ", n.Normalize("María Gómez"))
	assert.Equal(t, "", n.Normalize(""))
}

func TestNormalize_Idempotente(t *testing.T) {
	n := identity.NewNormalizer(map[string]string{
		"A": "B",
		"B": "C",
		"X": "Y",
		"Y": "X",
	})
	for _, in := range []string{"a", "B", "c", "x", "y"} {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "entrada %q", in)
	}
	assert.Equal(t, "C", n.Normalize("a"), "las cadenas de alias se resuelven hasta el final")
	assert.Equal(t, n.Normalize("x"), n.Normalize("y"), "un ciclo converge al mismo nombre")
}

func TestNormalize_MinusculasSinMayusculaSimple(t *testing.T) {
	n := identity.NewNormalizer(nil)
	assert.Equal(t, "J", n.Normalize("ǰ"))
	assert.Equal(t, "Ι", n.Normalize("ΐ"))
	assert.Equal(t, "Υ", n.Normalize("ΰ"))
}

// Recorre todas las runas hasta U+30000, solas y rodeadas de texto.
func TestNormalize_IdempotenteEnTodasLasRunas(t *testing.T) {
	n := identity.NewNormalizer(map[string]string{"Juancho": "Juan Pérez"})
	var bad int
	for r := rune(0); r < 0x30000; r++ {
		for _, in := range []string{string(r), "a" + string(r), string(r) + " b", "x" + string(r) + "\u0301"} {
			once := n.Normalize(in)
			if twice := n.Normalize(once); twice != once {
				bad++
				if bad <= 5 {
					t.Errorf("U+%04X %q -> %q -> %q", r, in, once, twice)
				}
			}
		}
	}
	assert.Zero(t, bad)
}

func FuzzNormalize_Idempotente(f *testing.F) {
	for _, seed := range []string{"ǰ", "ΐ", "ΰ", "Juan Pérez", "  juancho ", "\xff\xfe", "a\u0301\u0327", ""} {
		f.Add(seed)
	}
	n := identity.NewNormalizer(map[string]string{"Juancho": "Juan Pérez", "A": "B", "B": "A"})
	f.Fuzz(func(t *testing.T, in string) {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "entrada %q", in)
	})
}

func TestDisplayNames_Short(t *testing.T) {
	n := identity.NewNormalizer(nil)
	names := identity.NewDisplayNames(n, map[string]string{"Agente Uno Completo": "agente uno"})
	assert.Equal(t, "AGENTE UNO", names.Short("AGENTE UNO COMPLETO"))
	assert.Equal(t, "OTRO", names.Short("OTRO"))

	var none *identity.DisplayNames
	assert.Equal(t, "OTRO", none.Short("OTRO"))
}

func TestIsVisible_ContencionMutua(t *testing.T) {
	cases := []struct {
		requester, owner string
		want             bool
	}{
		{"JUAN", "JUAN PEREZ", true},
		{"JUAN PEREZ", "JUAN", true},
		{"JUAN PEREZ", "JUAN PEREZ", true},
		{"JUAN PEREZ", "MARIA", false},
		{"MARIA", "JUAN PEREZ", false},
		{"", "MARIA", true},
		{"JUAN", "", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, identity.IsVisible(c.requester, c.owner), "%q ve a %q", c.requester, c.owner)
	}
}
