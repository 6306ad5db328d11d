package admin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MarcGrol/pharmacare/lib/myerrors"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mytoken"
	"github.com/MarcGrol/pharmacare/lib/myvault"
)

// seedDefaultAdmin creates the default admin when no admin with that name exists.
func (s *service) seedDefaultAdmin(c context.Context) error {
	_, found, err := s.adminStore.Get(c, defaultUsername)
	if err != nil {
		return fmt.Errorf("error fetching admin %s: %s", defaultUsername, err)
	}
	if found {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %s", err)
	}

	err = s.adminStore.Put(c, defaultUsername, Admin{
		UID:          s.uuider.Create(),
		Username:     defaultUsername,
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("error storing admin %s: %s", defaultUsername, err)
	}

	s.logger.Log(c, defaultUsername, mylog.SeverityInfo, "Seeded default admin %s", defaultUsername)

	return nil
}

// login returns the new session token. Unknown user and wrong password are indistinguishable.
func (s *service) login(c context.Context, req LoginRequest) (string, Admin, error) {
	invalid := myerrors.NewNotAuthorizedError(fmt.Errorf("Invalid credentials"))

	admin, found, err := s.adminStore.Get(c, strings.TrimSpace(req.Username))
	if err != nil {
		return "", Admin{}, myerrors.NewInternalError(fmt.Errorf("error fetching admin: %s", err))
	}
	if !found {
		return "", Admin{}, invalid
	}
	err = bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password))
	if err != nil {
		s.logger.Log(c, admin.Username, mylog.SeverityWarn, "Failed login for %s", admin.Username)
		return "", Admin{}, invalid
	}

	token, err := mytoken.New()
	if err != nil {
		return "", Admin{}, myerrors.NewInternalError(err)
	}

	now := s.nower.Now()
	err = s.sessionStore.Put(c, mytoken.Digest(token), Session{
		AdminUID:  admin.UID,
		Username:  admin.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionDuration),
	})
	if err != nil {
		return "", Admin{}, myerrors.NewInternalError(fmt.Errorf("error storing admin session: %s", err))
	}

	s.logger.Log(c, admin.Username, mylog.SeverityInfo, "Admin %s logged in", admin.Username)

	return token, admin, nil
}

func (s *service) logout(c context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := s.sessionStore.Delete(c, mytoken.Digest(token))
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error removing admin session: %s", err))
	}
	return nil
}

// authenticate resolves a token into a live session.
func (s *service) authenticate(c context.Context, token string) (Session, error) {
	forbidden := myerrors.NewAuthenticationError(fmt.Errorf("Admin access required"))
	if token == "" {
		return Session{}, forbidden
	}

	session, found, err := s.sessionStore.Get(c, mytoken.Digest(token))
	if err != nil {
		return Session{}, myerrors.NewInternalError(fmt.Errorf("error fetching admin session: %s", err))
	}
	if !found {
		return Session{}, forbidden
	}
	if !s.nower.Now().Before(session.ExpiresAt) {
		_, _ = s.sessionStore.Delete(c, mytoken.Digest(token))
		return Session{}, forbidden
	}

	return session, nil
}

func (s *service) analytics(c context.Context) (Analytics, error) {
	products, err := s.productStore.List(c)
	if err != nil {
		return Analytics{}, myerrors.NewInternalError(fmt.Errorf("error fetching products: %s", err))
	}

	perCategory := map[string]int{}
	for _, p := range products {
		perCategory[p.Category]++
	}
	breakdown := []CategoryCount{}
	for category, count := range perCategory {
		breakdown = append(breakdown, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Category < breakdown[j].Category
	})

	monthlyOrders, err := s.countOrdersThisMonth(c)
	if err != nil {
		return Analytics{}, err
	}

	return Analytics{
		TotalProducts:     len(products),
		TotalCategories:   len(perCategory),
		MonthlyOrders:     monthlyOrders,
		CategoryBreakdown: breakdown,
	}, nil
}

func (s *service) countOrdersThisMonth(c context.Context) (int, error) {
	now := s.nower.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	orders, err := s.orderStore.List(c)
	if err != nil {
		return 0, myerrors.NewInternalError(fmt.Errorf("error fetching orders: %s", err))
	}
	count := 0
	for _, o := range orders {
		if !o.CreatedAt.Before(monthStart) {
			count++
		}
	}
	return count, nil
}

func (s *service) storeWhatsAppToken(c context.Context, session Session, req WhatsAppTokenRequest) error {
	accessToken := strings.TrimSpace(req.AccessToken)
	if accessToken == "" {
		return myerrors.NewInvalidInputError(fmt.Errorf("accessToken is required"))
	}

	err := s.vault.Put(c, myvault.TokenUID(whatsappProvider), myvault.Token{
		ProviderName: whatsappProvider,
		AccessToken:  accessToken,
		CreatedAt:    s.nower.Now(),
	})
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error storing whatsapp token: %s", err))
	}

	s.logger.Log(c, session.Username, mylog.SeverityInfo, "Admin %s replaced the whatsapp token", session.Username)

	return nil
}
