package store

import "sort"

// Slot names one persisted record of learned knowledge.
type Slot string

const (
	// SlotLearnedCategories maps a lower-cased description to a category.
	SlotLearnedCategories Slot = "learned_ai_data"
	// SlotCustomCategories is the ordered list of user-defined categories.
	SlotCustomCategories Slot = "custom_categories"
	// SlotUPIMappings maps a lower-cased UPI handle to a display name.
	SlotUPIMappings Slot = "upi_mappings"
	// SlotNonTransactionPatterns holds pattern keys the user rejected.
	SlotNonTransactionPatterns Slot = "non_transaction_patterns"
	// SlotConfirmedTransactionPatterns holds pattern keys the user confirmed.
	SlotConfirmedTransactionPatterns Slot = "confirmed_transaction_patterns"
	// SlotCreditPatterns holds pattern keys confirmed as money in.
	SlotCreditPatterns Slot = "credit_patterns"
	// SlotDebitPatterns holds pattern keys confirmed as money out.
	SlotDebitPatterns Slot = "debit_patterns"
	// SlotVoicePatterns maps a spoken description to a category.
	SlotVoicePatterns Slot = "voice_expense_patterns"
)

// AllSlots lists every slot in lock order.
var AllSlots = sortedSlots([]Slot{
	SlotLearnedCategories,
	SlotCustomCategories,
	SlotUPIMappings,
	SlotNonTransactionPatterns,
	SlotConfirmedTransactionPatterns,
	SlotCreditPatterns,
	SlotDebitPatterns,
	SlotVoicePatterns,
})

// Valid reports whether s is a registered slot.
func (s Slot) Valid() bool {
	for _, known := range AllSlots {
		if s == known {
			return true
		}
	}
	return false
}

func (s Slot) String() string { return string(s) }

func sortedSlots(slots []Slot) []Slot {
	out := make([]Slot, 0, len(slots))
	seen := make(map[Slot]bool, len(slots))
	for _, s := range slots {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
