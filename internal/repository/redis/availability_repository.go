package redis

import (
	"context"
	"fmt"
	"strings"

	"menuReco/business/menu"

	"github.com/redis/go-redis/v9"
)

// AvailabilityKey is the hash holding ingredient -> "1"/"0".
const AvailabilityKey = "menu:availability"

type AvailabilityRepository struct {
	client *redis.Client
}

var _ menu.AvailabilityRepository = (*AvailabilityRepository)(nil)

func NewAvailabilityRepository(client *redis.Client) *AvailabilityRepository {
	return &AvailabilityRepository{client: client}
}

func (r *AvailabilityRepository) GetAll(ctx context.Context) (map[string]bool, error) {
	raw, err := r.client.HGetAll(ctx, AvailabilityKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read availability: %w", err)
	}
	return decodeAvailability(raw), nil
}

// Set writes the given flags, leaving other ingredients untouched.
func (r *AvailabilityRepository) Set(ctx context.Context, avail map[string]bool) error {
	values := encodeAvailability(avail)
	if len(values) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(values))
	for k, v := range values {
		fields[k] = v
	}
	if err := r.client.HSet(ctx, AvailabilityKey, fields).Err(); err != nil {
		return fmt.Errorf("failed to write availability: %w", err)
	}
	return nil
}

// Delete forgets ingredients, which makes them available again.
func (r *AvailabilityRepository) Delete(ctx context.Context, ingredients ...string) error {
	fields := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if k := availabilityField(ing); k != "" {
			fields = append(fields, k)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	if err := r.client.HDel(ctx, AvailabilityKey, fields...).Err(); err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	return nil
}

func availabilityField(ingredient string) string {
	return strings.ToLower(strings.TrimSpace(ingredient))
}

func encodeAvailability(avail map[string]bool) map[string]string {
	out := make(map[string]string, len(avail))
	for ing, ok := range avail {
		k := availabilityField(ing)
		if k == "" {
			continue
		}
		v := "1"
		if !ok {
			v = "0"
		}
		// unavailable wins over case variants of the same name
		if prev, seen := out[k]; seen && prev == "0" {
			continue
		}
		out[k] = v
	}
	return out
}

// decodeAvailability treats anything other than "0" or "false" as available.
func decodeAvailability(raw map[string]string) map[string]bool {
	out := make(map[string]bool, len(raw))
	for k, v := range raw {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "0", "false":
			out[k] = false
		default:
			out[k] = true
		}
	}
	return out
}
