package application

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
)

// Fingerprint hashes a normalized placement request. Item order does not
// affect the result.
func Fingerprint(customerID string, items []domain.Item) string {
	sorted := append([]domain.Item(nil), items...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	h := sha256.New()
	h.Write([]byte(customerID))
	for _, item := range sorted {
		h.Write([]byte{0})
		h.Write([]byte(item.ProductID))
		h.Write([]byte{':'})
		h.Write([]byte(strconv.Itoa(item.Quantity)))
	}
	return hex.EncodeToString(h.Sum(nil))
}
