package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"tracker/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool

type ConnectedClient struct {
	fun SendSocketFunc
}

// ConnectedClients is needed as a person may be connected more than once
type ConnectedClients []*ConnectedClient

var (
	ConnectedPersons = cmap.New[ConnectedClients]()
)

type Event struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func addClient(id string, c *ConnectedClient) {
	ConnectedPersons.Upsert(id, ConnectedClients{c}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if exist {
			return append(valueInMap, c)
		}
		return newValue
	})
}

func removeClient(id string, c *ConnectedClient) {
	ConnectedPersons.Upsert(id, ConnectedClients{}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
}

// BroadcastEvent notifies every connected client about a change
// (casting updates, previews becoming ready).
func BroadcastEvent(eventType, id string) {
	data, err := json.Marshal(Event{Type: eventType, ID: id})
	if err != nil {
		return
	}
	for _, clients := range ConnectedPersons.Items() {
		for _, client := range clients {
			client.fun(data)
		}
	}
}

// EventsSocket is the realtime feed handler.
func EventsSocket(c *gin.Context, person *models.Person) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	// Setup client
	isConnected := true
	client := ConnectedClient{}
	client.fun = func(data []byte) bool {
		if !isConnected {
			return false
		}
		err := conn.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			log.Println("write err:", err)
			isConnected = false
			return false
		}
		return true
	}
	addClient(person.ID, &client)
	defer removeClient(person.ID, &client)
	// Main read cycle - the feed is one-way, clients only ping
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			isConnected = false
			break
		}
		if string(message) == "ping" {
			conn.WriteMessage(mt, []byte("pong"))
		}
	}
}
