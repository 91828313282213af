// Package wecom delivers markdown messages to a WeCom (企业微信) group-bot webhook.
//
// Messages are posted as msgtype "markdown_v2". Content over the soft length
// limit is shrunk with message.Fit before sending. A message counts as
// delivered only when the HTTP status is 2xx and the response errcode is 0.
package wecom
