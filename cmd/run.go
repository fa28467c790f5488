package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"cardbot/bot"
	"cardbot/config"
	"cardbot/database"
	"cardbot/events"
	"cardbot/repository"
	"cardbot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting card bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	accountService := service.NewAccountService(uowFactory)
	packService := service.NewPackService(uowFactory, cfg.Rarities, cfg.FreePackCooldown, cfg.FreePackSize)
	tradeService := service.NewTradeService(uowFactory)
	cardService := service.NewCardService(uowFactory, cfg.Rarities)
	incomeService := service.NewIncomeService(uowFactory)
	log.Println("Services initialized successfully")

	// Start the passive income worker
	incomeWorker := service.NewIncomeWorker(incomeService, cfg.AccrualInterval)
	stopIncomeWorker := incomeWorker.Start(ctx)
	defer stopIncomeWorker()

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:           cfg.DiscordToken,
		GuildID:         cfg.DiscordGuildID,
		AdminDiscordIDs: cfg.AdminDiscordIDs,
		ShopOffers:      cfg.ShopOffers,
	}
	discordBot, err := bot.New(botConfig, accountService, packService, tradeService, cardService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
