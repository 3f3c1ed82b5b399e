package email

// applicationReceivedHTML confirms receipt of an internship application.
const applicationReceivedHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Application Received</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f4f7;font-family:Arial,Helvetica,sans-serif;color:#333333;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background-color:#f4f4f7;padding:24px 0;">
    <tr>
      <td align="center">
        <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;overflow:hidden;">
          <tr>
            <td style="background-color:#1a73e8;padding:24px 32px;">
              <h1 style="margin:0;color:#ffffff;font-size:20px;">{{.CompanyName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding:32px;">
              <h2 style="margin-top:0;font-size:18px;">Hi {{.Name}},</h2>
              <p style="line-height:1.6;">Thank you for applying to the <strong>{{.InternshipTitle}}</strong> internship. We have received your application and our team will review it shortly.</p>
              <table role="presentation" cellpadding="0" cellspacing="0" style="background-color:#f8f9fa;border-radius:6px;width:100%;margin:16px 0;">
                <tr>
                  <td style="padding:16px 20px;">
                    <p style="margin:4px 0;"><strong>Position:</strong> {{.InternshipTitle}}</p>
                    <p style="margin:4px 0;"><strong>Duration:</strong> {{.Duration}}</p>
                    <p style="margin:4px 0;"><strong>Location:</strong> {{.Location}}</p>
                    <p style="margin:4px 0;"><strong>Stipend:</strong> {{.Stipend}}</p>
                    <p style="margin:4px 0;"><strong>Applied on:</strong> {{.AppliedAt}}</p>
                    <p style="margin:4px 0;"><strong>Resume:</strong> <a href="{{.ResumeLink}}" style="color:#1a73e8;">{{.ResumeLink}}</a></p>
                  </td>
                </tr>
              </table>
              <p style="line-height:1.6;">We will get back to you once your application has been reviewed. If you have any questions in the meantime, reach us at <a href="mailto:{{.CompanyEmail}}" style="color:#1a73e8;">{{.CompanyEmail}}</a>.</p>
              <p style="line-height:1.6;">Best regards,<br>The {{.CompanyName}} Team</p>
            </td>
          </tr>
          <tr>
            <td style="padding:20px 32px;background-color:#f8f9fa;font-size:12px;color:#888888;">
              <p style="margin:4px 0;">&copy; {{.CurrentYear}} {{.CompanyName}}. All rights reserved.</p>
              <p style="margin:4px 0;"><a href="{{.CompanyWebsite}}" style="color:#1a73e8;">{{.CompanyWebsite}}</a></p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
