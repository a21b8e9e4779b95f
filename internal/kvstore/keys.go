package kvstore

// Key derivation for every cached data kind. Keys are always prefix + owner
// id (or a fixed name for process-wide records); no two data kinds share a
// prefix, so different components never touch each other's keys.
const (
	prefixChatList     = "chats_list_"
	prefixChatMessages = "chat_msgs_"
	prefixChatMeta     = "chat_meta_"
	prefixUsage        = "usage_"
	prefixSubscription = "subscription_"

	// KeyGuestAnalyses holds the compound guest-analysis document
	// (summary list + id index) for the whole device.
	KeyGuestAnalyses = "guest_analyses_data"

	// Process-wide catalog snapshots.
	KeyProducts = "products"
	KeyLimits   = "limits"
	KeyOffers   = "offers"
	KeyFeatures = "features"

	// KeyOfferCycleStart is the epoch-millisecond start of the recurring
	// limited-offer banner cycle, stored as a decimal string.
	KeyOfferCycleStart = "limited_offer_cycle_start"

	// KeyLastAppLanguage is the last language the UI was shown in.
	KeyLastAppLanguage = "i18n.lastAppLanguage"
)

// ChatListKey returns the key for a user's chat summary list.
func ChatListKey(userID string) string { return prefixChatList + userID }

// ChatMessagesKey returns the key for one chat's message array.
func ChatMessagesKey(chatID string) string { return prefixChatMessages + chatID }

// ChatMetaKey returns the key for one chat's metadata record.
func ChatMetaKey(chatID string) string { return prefixChatMeta + chatID }

// UsageKey returns the key for a user's usage snapshot.
func UsageKey(userID string) string { return prefixUsage + userID }

// SubscriptionKey returns the key for a user's subscription snapshot.
func SubscriptionKey(userID string) string { return prefixSubscription + userID }
