package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// proxyMatcher reports whether an address belongs to a trusted proxy.
type proxyMatcher struct {
	nets []*net.IPNet
}

// newProxyMatcher parses proxy entries. Entries may be single IPs or CIDR
// ranges; bare IPs become host-length prefixes.
func newProxyMatcher(entries []string) (*proxyMatcher, error) {
	m := &proxyMatcher{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			_, ipnet, err := net.ParseCIDR(entry)
			if err != nil {
				return nil, fmt.Errorf("server: invalid trusted proxy %q: %w", entry, err)
			}
			m.nets = append(m.nets, ipnet)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			return nil, fmt.Errorf("server: invalid trusted proxy %q", entry)
		}
		bits := 32
		if ip.To4() == nil {
			bits = 128
		}
		m.nets = append(m.nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return m, nil
}

func (m *proxyMatcher) trusted(ip net.IP) bool {
	if m == nil || ip == nil {
		return false
	}
	for _, n := range m.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// clientIPFromRequest resolves the originating client IP. When the TCP peer
// is a trusted proxy, the forwarding headers are walked right to left and
// the first untrusted hop wins. Otherwise the peer address is returned and
// forwarding headers are ignored, since anyone can set them.
func clientIPFromRequest(r *http.Request, proxies *proxyMatcher) string {
	peer := remoteIP(r.RemoteAddr)
	if peer == nil {
		return r.RemoteAddr
	}
	if !proxies.trusted(peer) {
		return peer.String()
	}
	hops := forwardedChain(r)
	for i := len(hops) - 1; i >= 0; i-- {
		ip := parseForwardedIP(hops[i])
		if ip == nil {
			// Unparseable hop: stop walking rather than trust
			// whatever is to its left.
			break
		}
		if !proxies.trusted(ip) {
			return ip.String()
		}
	}
	return peer.String()
}

// forwardedChain returns the forwarding hops in request order, preferring
// the RFC 7239 Forwarded header over X-Forwarded-For.
func forwardedChain(r *http.Request) []string {
	if fwd := r.Header.Get("Forwarded"); fwd != "" {
		return parseForwardedFor(fwd)
	}
	var hops []string
	for _, header := range r.Header.Values("X-Forwarded-For") {
		for _, part := range strings.Split(header, ",") {
			if part = strings.TrimSpace(part); part != "" {
				hops = append(hops, part)
			}
		}
	}
	return hops
}

// parseForwardedFor extracts the for= values from an RFC 7239 Forwarded
// header.
func parseForwardedFor(header string) []string {
	var hops []string
	for _, element := range strings.Split(header, ",") {
		for _, pair := range strings.Split(element, ";") {
			k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(k), "for") {
				continue
			}
			hops = append(hops, strings.TrimSpace(v))
		}
	}
	return hops
}

// parseForwardedIP parses a single forwarding hop. Handles quoted values,
// bracketed IPv6, ports and zone suffixes.
func parseForwardedIP(entry string) net.IP {
	entry = strings.Trim(strings.TrimSpace(entry), `"`)
	if entry == "" {
		return nil
	}
	if strings.HasPrefix(entry, "[") {
		end := strings.IndexByte(entry, ']')
		if end < 0 {
			return nil
		}
		entry = entry[1:end]
	} else if strings.Count(entry, ":") == 1 {
		// A single colon means host:port around an IPv4 address.
		if host, _, err := net.SplitHostPort(entry); err == nil {
			entry = host
		}
	}
	if zone := strings.IndexByte(entry, '%'); zone >= 0 {
		entry = entry[:zone]
	}
	return net.ParseIP(entry)
}

func remoteIP(addr string) net.IP {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	return parseForwardedIP(host)
}
