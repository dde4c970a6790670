// cart_ws.go
package cartControllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rp-labs/storefront-api/cart"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// CartEvents streams the cart to the connected view whenever another view
// mutates the shared storage. This is the push half of the storage-change
// contract: the view that wrote never receives its own write.
func CartEvents(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var writeMu sync.Mutex
		unsubscribe := store.OnChange(func() {
			writeMu.Lock()
			defer writeMu.Unlock()
			conn.WriteJSON(store.Items())
		})
		defer unsubscribe()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
