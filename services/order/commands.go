package order

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MarcGrol/pharmacare/lib/myerrors"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mysession"
	"github.com/MarcGrol/pharmacare/services/cart"
	"github.com/MarcGrol/pharmacare/services/order/orderevents"
	"github.com/MarcGrol/pharmacare/services/orderapi"
)

// submitOrder turns the cart of the session into an order and forwards it to the shop.
// Only the ordered lines are cleared, and only once the order has been stored.
func (s *service) submitOrder(c context.Context, session mysession.Session, cartStore *cart.Store, req SubmitRequest) (SubmitResponse, error) {
	snapshot := cartStore.Snapshot()
	if snapshot.IsEmpty() {
		return SubmitResponse{}, myerrors.NewInvalidInputError(fmt.Errorf(EmptyCartMessage))
	}

	customer := orderapi.Customer{
		Name:  strings.TrimSpace(req.Customer.Name),
		Phone: strings.TrimSpace(req.Customer.Phone),
		Email: strings.TrimSpace(req.Customer.Email),
	}
	if customer.Name == "" || customer.Phone == "" || customer.Email == "" {
		return SubmitResponse{}, myerrors.NewInvalidInputError(fmt.Errorf(MissingFieldsMessage))
	}

	shopSettings, err := s.settings.GetSettings(c)
	if err != nil {
		return SubmitResponse{}, err
	}

	order := orderapi.Order{
		UID:        s.uuider.Create(),
		SessionUID: session.UID,
		CreatedAt:  s.nower.Now(),
		Customer:   customer,
		Lines:      []orderapi.Line{},
		TotalItems: snapshot.TotalItems(),
		Total:      snapshot.TotalPrice().StringFixed(2),
		Currency:   shopSettings.Currency,
		Status:     orderapi.StatusSubmitted,
	}
	for _, l := range snapshot.Lines() {
		order.Lines = append(order.Lines, orderapi.Line{
			ProductUID: l.Product.UID,
			Name:       l.Product.Name,
			UnitPrice:  l.Product.Price.StringFixed(2),
			Quantity:   l.Quantity,
			LineTotal:  l.Total().Round(2).StringFixed(2),
		})
	}

	order.Channel = s.deliver(c, Delivery{
		Order:     order,
		Text:      composeMessage(order),
		Recipient: shopSettings.WhatsappDigits(),
	})
	if order.Channel != orderapi.ChannelLog {
		order.Status = orderapi.StatusForwarded
	}

	err = s.orderStore.RunInTransaction(c, func(c context.Context) error {
		err := s.orderStore.Put(c, order.UID, order)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing order %s: %s", order.UID, err))
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderSubmitted{
			OrderUID:     order.UID,
			SessionUID:   order.SessionUID,
			CustomerName: order.Customer.Name,
			TotalItems:   order.TotalItems,
			Total:        order.Total,
			Currency:     order.Currency,
			Channel:      string(order.Channel),
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing order %s: %s", order.UID, err))
		}
		return nil
	})
	if err != nil {
		return SubmitResponse{}, err
	}

	cartStore.ClearOrdered(c, snapshot)

	s.logger.Log(c, order.UID, mylog.SeverityInfo, "Order %s of %s forwarded via %s", order.UID, order.Total, order.Channel)

	return SubmitResponse{
		Success:  true,
		Message:  successMessages[order.Channel],
		OrderUID: order.UID,
		Channel:  order.Channel,
	}, nil
}

// deliver tries every channel in turn and settles on the log when all of them fail.
func (s *service) deliver(c context.Context, delivery Delivery) orderapi.Channel {
	for _, sender := range s.senders {
		err := sender.Send(c, delivery)
		if err == nil {
			return sender.Channel()
		}
		s.logger.Log(c, delivery.Order.UID, mylog.SeverityWarn, "Error delivering order via %s: %s", sender.Channel(), err)
	}

	s.logger.Log(c, delivery.Order.UID, mylog.SeverityWarn, "No channel delivered order:\n%s", delivery.Text)
	return orderapi.ChannelLog
}

func (s *service) listOrders(c context.Context) ([]orderapi.Order, error) {
	orders, err := s.orderStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error fetching orders: %s", err))
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// whatsAppLink returns the deep link a customer follows to order a single product.
// Without product it links to a general inquiry.
func (s *service) whatsAppLink(c context.Context, productUID string) (WhatsAppLink, error) {
	shopSettings, err := s.settings.GetSettings(c)
	if err != nil {
		return WhatsAppLink{}, err
	}

	message := genericInquiry
	if productUID != "" {
		product, found, err := s.products.Get(c, productUID)
		if err != nil {
			return WhatsAppLink{}, myerrors.NewInternalError(fmt.Errorf("error fetching product %s: %s", productUID, err))
		}
		if !found {
			return WhatsAppLink{}, myerrors.NewNotFoundError(fmt.Errorf("Product not found"))
		}
		message = shopSettings.ProductMessage(product.Name, product.Price)
	}

	return WhatsAppLink{
		URL:     whatsAppURL(shopSettings.WhatsappDigits(), message),
		Message: message,
	}, nil
}
