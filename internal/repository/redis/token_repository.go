package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"menuReco/business/user"
	"menuReco/domain"

	"github.com/redis/go-redis/v9"
)

type TokenRepository struct {
	client *redis.Client
}

var _ user.TokenRepository = (*TokenRepository)(nil)

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func userTokenKey(userID string) string {
	return fmt.Sprintf("token:user:%s", userID)
}

func tokenLookupKey(token string) string {
	return fmt.Sprintf("token:lookup:%s", token)
}

// StoreToken keeps the session record under the user key and a reverse
// token -> user id lookup, both expiring with the token.
func (r *TokenRepository) StoreToken(ctx context.Context, userID, token string, data domain.TokenData, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal token data: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, userTokenKey(userID), jsonData, ttl)
	pipe.Set(ctx, tokenLookupKey(token), userID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}

	return nil
}

// GetTokenData retrieve token data by user ID
func (r *TokenRepository) GetTokenData(ctx context.Context, userID string) (*domain.TokenData, error) {
	val, err := r.client.Get(ctx, userTokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.New("token not found")
		}
		return nil, fmt.Errorf("failed to get token from Redis: %w", err)
	}

	var tokenData domain.TokenData
	if err := json.Unmarshal([]byte(val), &tokenData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token data: %w", err)
	}

	return &tokenData, nil
}

// ValidateToken checks if a token exists and is valid
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, tokenLookupKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errors.New("token not found or expired")
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}

// DeleteToken removes the lookup for token and the user's session record
// when it still points at that token.
func (r *TokenRepository) DeleteToken(ctx context.Context, userID, token string) error {
	if err := r.client.Del(ctx, tokenLookupKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete token lookup: %w", err)
	}

	data, err := r.GetTokenData(ctx, userID)
	if err != nil {
		return nil
	}
	if data.Token == token {
		if err := r.client.Del(ctx, userTokenKey(userID)).Err(); err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}
	}

	return nil
}
