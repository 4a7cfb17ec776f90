package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhbagheri-99/e-commerce/internal/client"
	"github.com/mhbagheri-99/e-commerce/internal/repository"

	"gorm.io/gorm"
)

// historyNeutralMessage is returned whether or not the email has an account,
// so the endpoint cannot be used to probe which addresses have purchased.
const historyNeutralMessage = "Check your email to view your order history and download your products."

type OrderHistoryService interface {
	// EmailOrderHistory mints a fresh download credential per past order and
	// mails the list to the address. Unknown addresses succeed silently.
	EmailOrderHistory(ctx context.Context, email string) (string, error)
}

type orderHistoryServiceImpl struct {
	emailClient      client.EmailClient
	baseURL          string
	emailFrom        string
	userRepo         repository.UserRepository
	orderRepo        repository.OrderRepository
	verificationRepo repository.DownloadVerificationRepository
}

func NewOrderHistoryService(
	emailClient client.EmailClient,
	baseURL string,
	emailFrom string,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	verificationRepo repository.DownloadVerificationRepository,
) OrderHistoryService {
	return &orderHistoryServiceImpl{
		emailClient:      emailClient,
		baseURL:          baseURL,
		emailFrom:        emailFrom,
		userRepo:         userRepo,
		orderRepo:        orderRepo,
		verificationRepo: verificationRepo,
	}
}

func (s *orderHistoryServiceImpl) EmailOrderHistory(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return historyNeutralMessage, nil
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	orders, err := s.orderRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("load orders: %w", err)
	}

	historyOrders := make([]historyOrderData, 0, len(orders))
	for _, order := range orders {
		verification, err := issueVerification(ctx, s.verificationRepo, order.ProductID)
		if err != nil {
			return "", fmt.Errorf("issue download verification: %w", err)
		}

		historyOrders = append(historyOrders, historyOrderData{
			ProductName: order.Product.Name,
			PurchasedAt: order.CreatedAt.Format("Jan 2, 2006"),
			Total:       formatCurrency(order.TotalInCents, order.Product.Currency),
			DownloadURL: downloadURL(s.baseURL, verification.ID),
		})
	}

	html, err := renderOrderHistoryEmail(historyOrders)
	if err != nil {
		return "", err
	}

	err = s.emailClient.Send(ctx, &client.EmailMessage{
		From:    s.emailFrom,
		To:      user.Email,
		Subject: "Order History",
		HTML:    html,
	})
	if err != nil {
		return "", fmt.Errorf("send order history email: %w", err)
	}

	return historyNeutralMessage, nil
}
