package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"cardbot/models"
)

// ShopOffer is one purchasable pack bundle
type ShopOffer struct {
	Count int   // cards in the pack
	Price int64 // coins
}

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken    string
	DiscordGuildID  string
	AdminDiscordIDs []int64 // Discord IDs allowed to manage the card catalog

	// Database configuration
	DatabaseURL string

	// Economy configuration
	FreePackCooldown time.Duration
	FreePackSize     int
	AccrualInterval  time.Duration
	ShopOffers       []ShopOffer
	Rarities         models.RarityTable

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Economy defaults
		FreePackCooldown: 30 * time.Minute,
		FreePackSize:     5,
		AccrualInterval:  time.Hour,
		ShopOffers: []ShopOffer{
			{Count: 2, Price: 20},
			{Count: 3, Price: 25},
			{Count: 10, Price: 60},
		},
		Rarities: models.DefaultRarityTable(),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if minutes := os.Getenv("FREE_PACK_COOLDOWN_MINUTES"); minutes != "" {
		if parsed, err := strconv.Atoi(minutes); err == nil && parsed > 0 {
			config.FreePackCooldown = time.Duration(parsed) * time.Minute
		}
	}
	if size := os.Getenv("FREE_PACK_SIZE"); size != "" {
		if parsed, err := strconv.Atoi(size); err == nil && parsed > 0 {
			config.FreePackSize = parsed
		}
	}
	if interval := os.Getenv("ACCRUAL_INTERVAL_MINUTES"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil && parsed > 0 {
			config.AccrualInterval = time.Duration(parsed) * time.Minute
		}
	}

	// Shop offers as "count:price" pairs, e.g. "2:20,3:25,10:60"
	if offers := os.Getenv("SHOP_OFFERS"); offers != "" {
		parsed, err := parseShopOffers(offers)
		if err != nil {
			return nil, fmt.Errorf("invalid SHOP_OFFERS: %w", err)
		}
		config.ShopOffers = parsed
	}

	// Parse admin Discord IDs
	if adminIDs := os.Getenv("ADMIN_DISCORD_IDS"); adminIDs != "" {
		idStrings := strings.Split(adminIDs, ",")
		for _, idStr := range idStrings {
			idStr = strings.TrimSpace(idStr)
			if idStr != "" {
				if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
					config.AdminDiscordIDs = append(config.AdminDiscordIDs, id)
				}
			}
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

func parseShopOffers(raw string) ([]ShopOffer, error) {
	var offers []ShopOffer
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("offer %q is not count:price", pair)
		}

		count, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("offer %q has an invalid count", pair)
		}
		price, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil || price <= 0 {
			return nil, fmt.Errorf("offer %q has an invalid price", pair)
		}

		offers = append(offers, ShopOffer{Count: count, Price: price})
	}

	if len(offers) == 0 {
		return nil, fmt.Errorf("no offers configured")
	}

	return offers, nil
}
