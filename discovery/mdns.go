// Package discovery advertises the canvas server on the local network so clients on
// the same LAN can find it without knowing its address.
package discovery

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

const ServiceType = "_realtimecanvas._tcp"

// Advertise registers the service under instance (the hostname when empty). The
// caller shuts the returned server down.
func Advertise(instance string, port int) (*mdns.Server, error) {
	service, err := newService(instance, port)
	if err != nil {
		return nil, err
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mDNS server: %w", err)
	}
	return server, nil
}

func newService(instance string, port int) (*mdns.MDNSService, error) {
	if instance == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("could not get hostname: %w", err)
		}
		instance = host
	}

	info := []string{"path=/ws"}
	service, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("create mDNS service: %w", err)
	}
	return service, nil
}
