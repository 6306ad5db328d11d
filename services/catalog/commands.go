package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MarcGrol/pharmacare/lib/myerrors"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/services/catalog/catalogevents"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
)

// listProducts filters on search when given, else on category. Results are ordered by name.
func (s *service) listProducts(c context.Context, category string, search string) ([]catalogapi.Product, error) {
	products, err := s.productStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching products: %s", err))
	}

	result := []catalogapi.Product{}
	for _, p := range products {
		switch {
		case search != "":
			if matchesSearch(p, search) {
				result = append(result, p)
			}
		case category != "" && category != catalogapi.CategoryAll:
			if p.Category == category {
				result = append(result, p)
			}
		default:
			result = append(result, p)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].UID < result[j].UID
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}

func matchesSearch(p catalogapi.Product, search string) bool {
	query := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

func (s *service) getProduct(c context.Context, uid string) (catalogapi.Product, error) {
	product, found, err := s.productStore.Get(c, uid)
	if err != nil {
		return catalogapi.Product{}, myerrors.NewInternalError(fmt.Errorf("error fetching product %s: %s", uid, err))
	}
	if !found {
		return catalogapi.Product{}, myerrors.NewNotFoundError(fmt.Errorf("Product not found"))
	}
	return product, nil
}

func (s *service) createProduct(c context.Context, form catalogapi.ProductForm) (catalogapi.Product, error) {
	product, err := form.NewProduct(s.uuider.Create())
	if err != nil {
		return catalogapi.Product{}, err
	}

	err = s.productStore.RunInTransaction(c, func(c context.Context) error {
		err := s.productStore.Put(c, product.UID, product)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing product %s: %s", product.UID, err))
		}

		err = s.publisher.Publish(c, catalogevents.TopicName, catalogevents.ProductCreated{
			ProductUID: product.UID,
			Name:       product.Name,
			Category:   product.Category,
			Price:      product.Price.StringFixed(2),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return catalogapi.Product{}, err
	}

	s.logger.Log(c, product.UID, mylog.SeverityInfo, "Created product %s (%s)", product.Name, product.UID)

	return product, nil
}

func (s *service) updateProduct(c context.Context, uid string, form catalogapi.ProductForm) (catalogapi.Product, error) {
	var product catalogapi.Product
	err := s.productStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		product, err = s.getProduct(c, uid)
		if err != nil {
			return err
		}

		err = form.ApplyTo(&product)
		if err != nil {
			return err
		}

		err = s.productStore.Put(c, uid, product)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing product %s: %s", uid, err))
		}

		err = s.publisher.Publish(c, catalogevents.TopicName, catalogevents.ProductUpdated{
			ProductUID: product.UID,
			Name:       product.Name,
			Category:   product.Category,
			Price:      product.Price.StringFixed(2),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return catalogapi.Product{}, err
	}

	s.logger.Log(c, uid, mylog.SeverityInfo, "Updated product %s (%s)", product.Name, uid)

	return product, nil
}

func (s *service) deleteProduct(c context.Context, uid string) error {
	err := s.productStore.RunInTransaction(c, func(c context.Context) error {
		deleted, err := s.productStore.Delete(c, uid)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error deleting product %s: %s", uid, err))
		}
		if !deleted {
			return myerrors.NewNotFoundError(fmt.Errorf("Product not found"))
		}

		err = s.publisher.Publish(c, catalogevents.TopicName, catalogevents.ProductDeleted{
			ProductUID: uid,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Log(c, uid, mylog.SeverityInfo, "Deleted product %s", uid)

	return nil
}
