package handler

import (
	"Carnival/pkg/live"
	"Carnival/pkg/log"
	"Carnival/pkg/response"
	"Carnival/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Live 结果大屏，连上后被动接收排名和公告推送
type Live struct {
	Hub         *live.Hub
	VoteService service.IVoteService
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (l *Live) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/live")
	g.GET("/ws", l.Serve)
	g.GET("/podium/:category", func(c *gin.Context) {
		ranking, err := l.VoteService.GetRanking(c.Request.Context(), c.Param("category"))
		if err != nil {
			response.Fail(c, 500, err.Error())
			return
		}
		response.Success(c, ranking)
	})
}

func (l *Live) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.L.Info("ws upgrade failed", zap.Error(err))
		return
	}

	id := l.Hub.Register(conn)
	defer l.Hub.Unregister(id)

	// 大屏只收不发，读循环只负责感知断开
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
