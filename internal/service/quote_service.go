package service

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"github.com/tlecomte/finance-tracker-backend/internal/apperrors"
	"github.com/tlecomte/finance-tracker-backend/internal/model"
	"github.com/tlecomte/finance-tracker-backend/internal/quote"
	"github.com/tlecomte/finance-tracker-backend/internal/repository"
)

// QuoteService refreshes position mark prices from the market-data provider.
// The optional provider API token is stored fernet-encrypted; the plaintext
// only exists in memory for the duration of a refresh.
type QuoteService struct {
	quoteConfigRepo *repository.QuoteConfigRepository
	positionRepo    *repository.PositionRepository
	client          quote.Client
	encryptionKey   string
}

// NewQuoteService creates a new QuoteService with the provided dependencies.
// encryptionKey is the base64 fernet key from configuration; it may be empty,
// in which case no provider token can be stored or used.
func NewQuoteService(
	quoteConfigRepo *repository.QuoteConfigRepository,
	positionRepo *repository.PositionRepository,
	client quote.Client,
	encryptionKey string,
) *QuoteService {
	return &QuoteService{
		quoteConfigRepo: quoteConfigRepo,
		positionRepo:    positionRepo,
		client:          client,
		encryptionKey:   encryptionKey,
	}
}

// SetConfig stores the provider configuration, encrypting the API token at
// rest. An empty token disables token-authenticated requests without
// requiring an encryption key.
func (s *QuoteService) SetConfig(apiToken string, enabled bool) error {
	config := &model.QuoteConfig{
		ID:      uuid.New().String(),
		Enabled: enabled,
	}

	if apiToken != "" {
		key, err := s.parseKey()
		if err != nil {
			return err
		}
		encrypted, err := fernet.EncryptAndSign([]byte(apiToken), key)
		if err != nil {
			return fmt.Errorf("failed to encrypt provider token: %w", err)
		}
		config.APIToken = string(encrypted)
	}

	return s.quoteConfigRepo.UpsertConfig(config)
}

// RefreshAll fetches the latest close for every held symbol and fans the
// price out to all positions in that symbol. A symbol whose quote fails is
// logged and skipped; the refresh continues with the rest. Returns the number
// of symbols successfully refreshed.
func (s *QuoteService) RefreshAll() (int, error) {
	symbols, err := s.positionRepo.ListSymbols()
	if err != nil {
		return 0, err
	}
	if len(symbols) == 0 {
		return 0, nil
	}

	token, err := s.providerToken()
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, symbol := range symbols {
		price, err := s.client.LatestClose(symbol, token)
		if err != nil {
			log.Printf("quote refresh: %s skipped: %v", symbol, err)
			continue
		}
		if _, err := s.positionRepo.UpdateMarkPriceAllHolders(symbol, price); err != nil {
			return refreshed, err
		}
		refreshed++
	}

	return refreshed, nil
}

// providerToken returns the decrypted provider API token, or "" when no
// enabled token is configured.
func (s *QuoteService) providerToken() (string, error) {
	config, err := s.quoteConfigRepo.GetConfig()
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !config.Enabled || config.APIToken == "" {
		return "", nil
	}

	key, err := s.parseKey()
	if err != nil {
		return "", err
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(config.APIToken), 0, []*fernet.Key{key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt provider token")
	}

	return string(plaintext), nil
}

func (s *QuoteService) parseKey() (*fernet.Key, error) {
	if s.encryptionKey == "" {
		return nil, apperrors.ErrEncryptionKeyMissing
	}
	key, err := fernet.DecodeKey(s.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	return key, nil
}
