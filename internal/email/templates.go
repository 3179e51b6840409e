package email

import "html/template"

const brandStyles = `
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #EA580C 0%, #C2410C 100%); color: white; padding: 20px; text-align: center; }
        .content { background: #f9f9f9; padding: 20px; border: 1px solid #ddd; }
        .footer { text-align: center; padding: 20px; color: #777; font-size: 12px; }`

var otpTemplate = template.Must(template.New("otp").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #2C4A6B;">Password Reset Request</h2>
    <p>Hello,</p>
    <p>You have requested to reset your password. Please use the following OTP to proceed:</p>
    <div style="text-align: center; margin: 30px 0;">
        <span style="background-color: #f4f4f4; padding: 10px 20px; font-size: 24px; letter-spacing: 5px; font-weight: bold; border-radius: 5px; color: #333;">{{.OTP}}</span>
    </div>
    <p style="color: #666; font-size: 14px;">
        This OTP is valid for 10 minutes.<br>
        If you didn't request this, please ignore this email.
    </p>
    <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
    <p style="color: #999; font-size: 12px;">&copy; {{.Year}} 89T Corporate Advisors. All rights reserved.</p>
</div>
`))

var invitationTemplate = template.Must(template.New("invitation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #2C4A6B;">Welcome to 89T Corporate Advisors Admin Panel</h2>
    <p>Hi {{.Name}},</p>
    <p>You have been invited to join the 89T Corporate Advisors admin team.</p>
    <p>Please click the button below to set up your password and activate your account:</p>
    <div style="text-align: center; margin: 30px 0;">
        <a href="{{.SetupURL}}" style="background-color: #2C4A6B; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Set Up Password</a>
    </div>
    <p style="color: #666; font-size: 14px;">
        This invitation link will expire in 7 days.<br>
        If you didn't expect this invitation, please ignore this email.
    </p>
    <p style="color: #666; font-size: 14px;">
        Or copy and paste this link in your browser:<br>
        <a href="{{.SetupURL}}" style="color: #2C4A6B;">{{.SetupURL}}</a>
    </p>
    <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
    <p style="color: #999; font-size: 12px;">&copy; {{.Year}} 89T Corporate Advisors. All rights reserved.</p>
</div>
`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>` + brandStyles + `
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>Welcome to 89T Corporate Advisors Admin Panel</h2></div>
        <div class="content">
            <p>Hello {{.Name}},</p>
            <p>Your admin account has been created successfully. You can now access the admin panel to manage the website content.</p>
            <p>If you have any questions, please contact the super administrator.</p>
        </div>
        <div class="footer"><p>&copy; {{.Year}} 89T Corporate Advisors Pvt. Ltd. All rights reserved.</p></div>
    </div>
</body>
</html>
`))

var contactNotificationTemplate = template.Must(template.New("contactNotification").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>` + brandStyles + `
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { color: #333; margin-top: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>New Contact Form Submission</h2></div>
        <div class="content">
            <div class="field"><div class="label">Name:</div><div class="value">{{.FullName}}</div></div>
            <div class="field"><div class="label">Email:</div><div class="value"><a href="mailto:{{.Email}}">{{.Email}}</a></div></div>
            <div class="field"><div class="label">Phone:</div><div class="value"><a href="tel:{{.Phone}}">{{.Phone}}</a></div></div>
            <div class="field"><div class="label">Service Interested In:</div><div class="value">{{.ServiceInterest}}</div></div>
            <div class="field"><div class="label">Message:</div><div class="value">{{.Message}}</div></div>
        </div>
        <div class="footer"><p>This is an automated notification from 89T Corporate Advisors website.</p></div>
    </div>
</body>
</html>
`))

var autoReplyTemplate = template.Must(template.New("autoReply").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>` + brandStyles + `
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>Thank You for Contacting Us</h2></div>
        <div class="content">
            <p>Dear {{.FullName}},</p>
            <p>Thank you for reaching out to 89T Corporate Advisors regarding <strong>{{.ServiceInterest}}</strong>.</p>
            <p>We have received your inquiry and our team will get back to you shortly.</p>
            <p>If you have any urgent queries, please feel free to call us directly.</p>
            <br>
            <p>Best Regards,</p>
            <p><strong>89tcapl Team</strong></p>
        </div>
        <div class="footer"><p>&copy; {{.Year}} 89T Corporate Advisors Pvt. Ltd. All rights reserved.</p></div>
    </div>
</body>
</html>
`))
