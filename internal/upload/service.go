package upload

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/mdns"

	"github.com/example/photomark/internal/persist"
)

// ServiceType is the mDNS service type of the LAN photo-storage
// service.
const ServiceType = "_photomark._tcp"

// manifest precedes the binary blob on the wire.
type manifest struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	ParentID string `json:"parentId,omitempty"`
	Size     int    `json:"size"`
}

type ack struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Service uploads derivatives to a photo-storage service on the local
// network. With Endpoint set it dials that address directly; otherwise
// it discovers the service via mDNS.
type Service struct {
	Endpoint string
	Timeout  time.Duration
}

func (s Service) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return 10 * time.Second
}

// Upload ships the blob: JSON manifest first, then one binary message
// with the image bytes, then waits for the service's ack.
func (s Service) Upload(ctx context.Context, b persist.Blob) error {
	addr := s.Endpoint
	if addr == "" {
		found, err := discover(ctx, s.timeout())
		if err != nil {
			return err
		}
		addr = found
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: "/upload"}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", u.String(), err)
	}
	defer conn.Close()

	deadline := time.Now().Add(s.timeout())
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.SetReadDeadline(deadline)

	m := manifest{
		ID:       uuid.NewString(),
		Filename: b.Filename,
		ParentID: b.ParentID,
		Size:     len(b.Data),
	}
	if err := conn.WriteJSON(m); err != nil {
		return fmt.Errorf("send manifest: %w", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, b.Data); err != nil {
		return fmt.Errorf("send blob: %w", err)
	}
	var a ack
	if err := conn.ReadJSON(&a); err != nil {
		return fmt.Errorf("read ack: %w", err)
	}
	if !a.OK {
		return fmt.Errorf("service rejected %s: %s", b.Filename, a.Error)
	}
	log.Printf("uploaded %s (%d bytes) to %s", b.Filename, len(b.Data), addr)
	return nil
}

// discover browses mDNS for the first reachable service instance.
func discover(ctx context.Context, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)
	go func() {
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			select {
			case found <- fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port):
			default:
			}
		}
	}()
	go func() {
		if err := mdns.Lookup(ServiceType, entries); err != nil {
			log.Printf("mdns lookup: %v", err)
		}
		close(entries)
	}()
	select {
	case addr := <-found:
		return addr, nil
	case <-time.After(timeout):
		return "", fmt.Errorf("no %s service found on the local network", ServiceType)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
