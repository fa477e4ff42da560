package live

import (
	"Carnival/pkg/log"
	"encoding/json"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

// client 包一层写锁
// gorilla 的连接同一时刻只允许一个写入者，所有出站帧都走 write
type client struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

// Hub 大屏连接管理
// 投票、开关场次之后把最新排名推给所有在线大屏
type Hub struct {
	seq   int64
	conns cmap.ConcurrentMap[string, *client]
}

func NewHub() *Hub {
	return &Hub{
		conns: cmap.New[*client](),
	}
}

func (h *Hub) Register(conn *websocket.Conn) string {
	id := strconv.FormatInt(atomic.AddInt64(&h.seq, 1), 10)
	h.conns.Set(id, &client{ws: conn})
	return id
}

func (h *Hub) Unregister(id string) {
	if c, ok := h.conns.Get(id); ok {
		_ = c.ws.Close()
	}
	h.conns.Remove(id)
}

// Broadcast 推送失败的连接直接摘掉，下次前端会重连
func (h *Hub) Broadcast(event string, payload any) {
	raw, err := json.Marshal(map[string]any{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		return
	}

	for item := range h.conns.IterBuffered() {
		if err := item.Val.write(raw); err != nil {
			log.L.Info("live push failed, drop conn", zap.String("cid", item.Key), zap.Error(err))
			h.Unregister(item.Key)
		}
	}
}

func (h *Hub) Count() int {
	return h.conns.Count()
}
