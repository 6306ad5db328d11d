package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
)

var seedColumns = []string{"name", "description", "price", "category", "image", "inStock", "rating", "reviewCount"}

var defaultSeed = [][]string{
	{"Panadol Extra", "Antidouleur et anti-fièvre efficace, 500mg + 65mg caféine", "45.00", "medicaments", "https://images.unsplash.com/photo-1584308666744-24d5c474f2ae?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "1", "4.8", "24"},
	{"Crème Anti-Âge Vichy", "Soin anti-âge hydratant, réduction des rides visibles", "320.00", "cosmetiques", "https://images.unsplash.com/photo-1596462502278-27bfdc403348?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "1", "4.5", "18"},
	{"Vitamines Multi Bio", "Complexe vitaminique bio, 100% naturel et certifié", "180.00", "bio", "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "1", "5.0", "32"},
	{"Thermomètre Digital", "Thermomètre digital précis, mesure rapide en 30 secondes", "85.00", "medicaments", "https://images.unsplash.com/photo-1559757148-5c350d0d3c56?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "1", "4.2", "12"},
	{"Crème Solaire SPF 50+", "Protection solaire très haute, résistante à l'eau", "125.00", "cosmetiques", "https://images.unsplash.com/photo-1556228453-efd6c1ff04f6?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "1", "4.9", "41"},
	{"Tisanes Détox Bio", "Mélange de plantes bio pour détox naturelle", "65.00", "bio", "https://images.unsplash.com/photo-1544787219-7f47ccb76574?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=300", "1", "4.3", "28"},
}

// readSeedFile parses a ';' separated file with one product per line in the order of seedColumns.
// Lines starting with '#' are comments.
func readSeedFile(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.Comment = '#'
	reader.FieldsPerRecord = len(seedColumns)
	reader.TrimLeadingSpace = true

	records := [][]string{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading seed file %s: %s", filename, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func productFormFromRecord(record []string) (catalogapi.ProductForm, error) {
	values := url.Values{}
	for idx, column := range seedColumns {
		values.Set(column, record[idx])
	}
	return catalogapi.NewProductFormFromValues(values)
}

// seed fills an empty catalog, from seedFile when given and with the sample products otherwise.
func (s *service) seed(c context.Context, seedFile string) (int, error) {
	existing, err := s.productStore.List(c)
	if err != nil {
		return 0, fmt.Errorf("error checking catalog: %s", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	records := defaultSeed
	if seedFile != "" {
		records, err = readSeedFile(seedFile)
		if err != nil {
			return 0, err
		}
	}

	for idx, record := range records {
		form, err := productFormFromRecord(record)
		if err != nil {
			return idx, fmt.Errorf("error in seed record %d: %s", idx+1, err)
		}
		product, err := form.NewProduct(s.uuider.Create())
		if err != nil {
			return idx, fmt.Errorf("error in seed record %d: %s", idx+1, err)
		}
		err = s.productStore.Put(c, product.UID, product)
		if err != nil {
			return idx, fmt.Errorf("error storing seed product %s: %s", product.Name, err)
		}
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Seeded catalog with %d products", len(records))

	return len(records), nil
}
