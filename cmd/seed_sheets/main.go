// seed_sheets convierte exportaciones CSV de las planillas en libros xlsx, uno por tabla,
// para levantar la API localmente con STORE_DRIVER=xlsx.
//
// Uso: go run ./cmd/seed_sheets -dir data -encoding latin1 personal.csv:PERSONAL cartera.csv:CARTERA
// La primera fila de cada CSV es la cabecera. El nombre de la hoja sale de la configuración
// por defecto de cada tabla.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/xlsx"
	"github.com/jhoicas/warner-inmobiliaria/pkg/config"
)

func main() {
	dir := flag.String("dir", "data", "directorio de salida de los libros")
	encoding := flag.String("encoding", "utf8", "codificación de los CSV: utf8, latin1 o windows1252")
	delimiter := flag.String("delimiter", ",", "separador de campos")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "uso: seed_sheets [-dir data] [-encoding latin1] archivo.csv:TABLA ...")
		os.Exit(2)
	}
	sheets := config.DefaultSheetNames()

	for _, arg := range flag.Args() {
		path, table, ok := strings.Cut(arg, ":")
		if !ok || table == "" {
			fmt.Fprintf(os.Stderr, "argumento inválido %q: se espera archivo.csv:TABLA\n", arg)
			os.Exit(2)
		}
		table = strings.ToUpper(table)
		rows, err := readCSV(path, *encoding, *delimiter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "leer %s: %v\n", path, err)
			os.Exit(1)
		}
		if err := xlsx.CreateWorkbook(*dir, repository.TableID(table), sheets[table], rows); err != nil {
			fmt.Fprintf(os.Stderr, "escribir %s: %v\n", table, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d filas → %s\n", table, len(rows), xlsx.WorkbookPath(*dir, repository.TableID(table)))
	}
}

func readCSV(path, encoding, delimiter string) ([]sheet.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var in io.Reader = f
	switch strings.ToLower(encoding) {
	case "utf8", "utf-8", "":
	case "latin1", "iso-8859-1", "iso8859-1":
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	case "windows1252", "windows-1252", "cp1252":
		in = transform.NewReader(f, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	if d := []rune(delimiter); len(d) == 1 {
		r.Comma = d[0]
	}
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	rows := make([]sheet.Row, 0, len(records))
	for _, rec := range records {
		row := make(sheet.Row, len(rec))
		for i, v := range rec {
			row[i] = strings.TrimPrefix(v, "\ufeff")
		}
		rows = append(rows, row)
	}
	return rows, nil
}
