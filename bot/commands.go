package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your current coin balance",
		},
		{
			Name:        "freepack",
			Description: "Claim your free card pack",
		},
		{
			Name:        "shop",
			Description: "Show the pack bundles for sale",
		},
		{
			Name:        "buy",
			Description: "Buy a pack bundle from the shop",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "bundle",
					Description: "Bundle number from /shop",
					Required:    true,
				},
			},
		},
		{
			Name:        "inventory",
			Description: "Show your card collection",
		},
		{
			Name:        "trade",
			Description: "Offer, resolve and list card trades",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "offer",
					Description: "Offer one of your cards to another player",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "item",
							Description: "Inventory item ID from /inventory",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Player to offer the card to",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "accept",
					Description: "Accept a trade offer made to you",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Trade offer ID",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reject",
					Description: "Reject a trade offer made to you",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Trade offer ID",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "cancel",
					Description: "Cancel a trade offer you made",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Trade offer ID",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List your pending trade offers",
				},
			},
		},
		{
			Name:        "card",
			Description: "Manage the card catalog (admins only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a card definition to the catalog",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Card name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "rarity",
							Description: "Card rarity",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "common", Value: "common"},
								{Name: "rare", Value: "rare"},
								{Name: "epic", Value: "epic"},
								{Name: "legendary", Value: "legendary"},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "income",
							Description: "Coins per hour the card earns",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "artwork",
							Description: "Artwork reference URL",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List the card catalog",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a card definition from the catalog",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "id",
							Description: "Card definition ID",
							Required:    true,
						},
					},
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
